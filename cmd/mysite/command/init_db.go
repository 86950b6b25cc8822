// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data.
The database connection information are read from the config file.
No changes will be made to the config file itself.
` + credsRenewalMessage + `

The configured schema and the normal role are created if they do not
exist and all pending schema migrations are applied. Running init-prod
on an initialized database only renews the passwords and applies the
pending migrations.`,
	RunE: initProd,
	Args: cobra.NoArgs,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data.
It performs the init-prod actions and then adds a few sample stores,
an author, published and draft posts with tags, and comments.
` + credsRenewalMessage,
	RunE: initDev,
	Args: cobra.NoArgs,
}

func initProd(cmd *cobra.Command, _ []string) error {
	uc, err := newSetupUseCase()
	if err != nil {
		return err
	}
	if err = uc.InitProd(cmd.Context()); err != nil {
		return fmt.Errorf("initializing DB with prod data: %w", err)
	}
	return nil
}

func initDev(cmd *cobra.Command, _ []string) error {
	uc, err := newSetupUseCase()
	if err != nil {
		return err
	}
	if err = uc.InitDev(cmd.Context()); err != nil {
		return fmt.Errorf("initializing DB with dev data: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initProdCmd, initDevCmd)
}
