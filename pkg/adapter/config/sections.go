// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"github.com/momeni/mysite/pkg/adapter/config/settings"
	"github.com/momeni/mysite/pkg/adapter/restful/gin"
)

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill them by their defaults.
type Gin struct {
	Logger   *bool  // Whether to register the gin.Logger() middleware
	Recovery *bool  // Whether to register the gin.Recovery() middleware
	Mode     string `yaml:",omitempty"` // debug, release, or test

	// TrustedProxies lists the reverse proxy addresses or CIDRs whose
	// X-Forwarded-For headers are honored when finding the client IP.
	// No proxy is trusted by default.
	TrustedProxies []string `yaml:"trusted-proxies,omitempty"`
}

// ValidateAndNormalize disables the Logger and enables the Recovery
// middlewares unless configured otherwise. The release mode is used
// by default.
func (g *Gin) ValidateAndNormalize() error {
	settings.Nil2Zero(&g.Logger)
	enabled := true
	settings.OverwriteNil(&g.Recovery, &enabled)
	switch g.Mode {
	case "":
		g.Mode = gin.ReleaseMode
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("unsupported mode: %q", g.Mode)
	}
	for _, p := range g.TrustedProxies {
		if _, err := netip.ParsePrefix(p); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(p); err != nil {
			return fmt.Errorf("trusted-proxies: invalid address %q", p)
		}
	}
	return nil
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() (*gin.Engine, error) {
	gin.SetMode(g.Mode)
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(g.TrustedProxies, middlewares...)
}

// Server contains the HTTP server settings.
type Server struct {
	Address         string             `yaml:",omitempty"` // like :8080
	ReadTimeout     *settings.Duration `yaml:"read-timeout,omitempty"`
	WriteTimeout    *settings.Duration `yaml:"write-timeout,omitempty"`
	ShutdownTimeout *settings.Duration `yaml:"shutdown-timeout,omitempty"`
}

var timeoutRange = settings.Range[settings.Duration]{
	Min: settings.Duration(100 * time.Millisecond),
	Max: settings.Duration(10 * time.Minute),
}

// ValidateAndNormalize fills the missing settings with their defaults
// and ensures that timeouts are between 100ms and 10m.
func (s *Server) ValidateAndNormalize() error {
	if s.Address == "" {
		s.Address = ":8080"
	}
	for _, t := range []struct {
		name  string
		d     **settings.Duration
		deflt time.Duration
	}{
		{"read-timeout", &s.ReadTimeout, 10 * time.Second},
		{"write-timeout", &s.WriteTimeout, 10 * time.Second},
		{"shutdown-timeout", &s.ShutdownTimeout, 5 * time.Second},
	} {
		deflt := settings.Duration(t.deflt)
		settings.OverwriteNil(t.d, &deflt)
		if err := timeoutRange.Check(t.name, *t.d); err != nil {
			return err
		}
	}
	return nil
}

// Log contains the default logger settings.
type Log struct {
	Level  string `yaml:",omitempty"` // debug, info, warn, or error
	Format string `yaml:",omitempty"` // text or json
	level  slog.Level
}

// ValidateAndNormalize parses the log level (info by default) and
// checks the log format (text by default).
func (l *Log) ValidateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	l.Level = strings.ToLower(l.Level)
	if err := l.level.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	switch l.Format {
	case "":
		l.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unsupported format: %q", l.Format)
	}
	return nil
}

// NewLogger creates a structured logger which writes into w as
// configured by the `l` settings.
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Blog contains the blog resources rendering settings.
type Blog struct {
	// Markdown indicates if post bodies should be rendered from
	// Markdown into HTML by the post detail resource.
	Markdown *bool
	// ExcerptWords is the number of words which are kept in the body
	// excerpts of the posts list resource.
	ExcerptWords *int `yaml:"excerpt-words,omitempty"`
	// CommentsPerMinute limits the comments which one client may
	// submit on the post detail resource.
	CommentsPerMinute *int `yaml:"comments-per-minute,omitempty"`
}

// ValidateAndNormalize enables the Markdown rendering, uses 30 words
// excerpts, and accepts 5 comments per minute from each client unless
// configured otherwise. Excerpts may have 1 to 500 words and the
// comments rate may be 1 to 1000 per minute.
func (b *Blog) ValidateAndNormalize() error {
	enabled, words, comments := true, 30, 5
	settings.OverwriteNil(&b.Markdown, &enabled)
	settings.OverwriteNil(&b.ExcerptWords, &words)
	settings.OverwriteNil(&b.CommentsPerMinute, &comments)
	wordsRange := settings.Range[int]{Min: 1, Max: 500}
	ratesRange := settings.Range[int]{Min: 1, Max: 1000}
	return errors.Join(
		wordsRange.Check("excerpt-words", b.ExcerptWords),
		ratesRange.Check("comments-per-minute", b.CommentsPerMinute),
	)
}
