// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/mysite/pkg/adapter/config"
	"github.com/momeni/mysite/pkg/core/usecase/setupuc"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used and for upgrade or downgrade
of an existing installation, the migrate may be used.
These actions need the postgres driver; the memory driver keeps no
schema to be managed.`,
}

const credsRenewalMessage = `
The admin role connects using its password from the .pgpass file in
the pass-dir directory. Passwords of the admin and normal roles are
renewed and the new passwords are written in the .pgpass.new file
before being committed in the database. That file is moved over the
.pgpass file afterwards, so an interrupted run may be retried.`

// newSetupUseCase loads the config file and instantiates the database
// setup use case based on its database section.
func newSetupUseCase() (*setupuc.UseCase, error) {
	c, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if c.Database.IsMemory() {
		return nil, fmt.Errorf("db command: %w", config.ErrNotMigratable)
	}
	return setupuc.New(&c.Database, c.Database.Repos()), nil
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
