// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the mysite
// web project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database setup actions.
// The init-dev and init-prod actions initialize the database with the
// development or production suitable data records and the migrate
// action applies, reverts, or lists the schema migrations.
//
//	./mysite [-c /path/of/config.yaml]           # start web server
//	./mysite db init-dev [-c /path/of/config.yaml]
//	./mysite db init-prod [-c /path/of/config.yaml]
//	./mysite db migrate {up|down|status} [-c /path/of/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/mysite/pkg/adapter/config"
	"github.com/momeni/mysite/pkg/adapter/restful/gin/routes"
	"github.com/momeni/mysite/pkg/core/log"
	"github.com/momeni/mysite/pkg/core/repo"
	"github.com/momeni/mysite/pkg/core/usecase/setupuc"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "mysite",
	Short: "A store catalog and blog web service",
	Long: `A store catalog and blog web service which keeps the core use
cases and models independent of the third-party dependent adapters.
The blog publishes posts by their publish date and slug, lists the
published posts (optionally by a tag), and accepts reader comments.
Administration REST APIs manage stores, posts of all statuses, comment
moderation, and authors.
Data may be kept in PostgreSQL (after running the "db init-prod" or
"db init-dev" command) or in the process memory (by choosing the memory
driver in the config file, which is seeded with sample data on start).`,
	RunE:              startWebServer,
	Args:              cobra.NoArgs,
	PersistentPreRunE: loadDefaultLogger,
}

// loadConfig reads the config file which is chosen by the -c flag,
// the CONFIG_FILE environment variable, or the default path.
func loadConfig() (*config.Config, error) {
	path := config.ResolvePath(cfgPath)
	c, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", path, err)
	}
	return c, nil
}

// loadDefaultLogger installs the configured logger as the slog default
// one, so all commands log in the same format. A broken config file is
// reported by the command itself.
func loadDefaultLogger(_ *cobra.Command, _ []string) error {
	if c, err := loadConfig(); err == nil {
		slog.SetDefault(c.Log.NewLogger(os.Stderr))
	}
	return nil
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.Database.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	if c.Database.IsMemory() {
		if err = setupuc.Seed(ctx, p, c.Database.Repos()); err != nil {
			return fmt.Errorf("seeding in-memory DB: %w", err)
		}
	}
	e, err := c.Gin.NewEngine()
	if err != nil {
		return fmt.Errorf("creating gin engine: %w", err)
	}
	if err = routes.Register(ctx, e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := &http.Server{
		Addr:         c.Server.Address,
		Handler:      e,
		ReadTimeout:  time.Duration(*c.Server.ReadTimeout),
		WriteTimeout: time.Duration(*c.Server.WriteTimeout),
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "web server is listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err = <-errCh:
		return fmt.Errorf("running web server: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down the web server")
	shCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(*c.Server.ShutdownTimeout),
	)
	defer cancel()
	if err = srv.Shutdown(shCtx); err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("running web server: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "",
		"config file path (default is $"+config.EnvVar+
			" or "+config.DefaultPath+")",
	)
}
