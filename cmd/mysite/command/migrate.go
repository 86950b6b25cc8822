// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate {up|down|status}",
	Short: "Apply, revert, or list the database schema migrations",
	Long: `Apply, revert, or list the database schema migrations.
The up action applies all pending migrations, the down action reverts
the last applied migration, and the status action lists all known
migrations with their application time.
Migrations run with the normal role in the configured schema, so the
database must be initialized by init-prod or init-dev beforehand.`,
	RunE:      migrate,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
}

func migrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	uc, err := newSetupUseCase()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch args[0] {
	case "status":
		states, err := uc.MigrationStatus(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tPATH\tAPPLIED AT")
		for _, s := range states {
			at := "pending"
			if s.Applied {
				at = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, s.Path, at)
		}
		return w.Flush()
	case "up":
		vers, err := uc.MigrateUp(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "applied %d migration(s): %v\n", len(vers), vers)
	case "down":
		vers, err := uc.MigrateDown(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "reverted %d migration(s): %v\n", len(vers), vers)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(migrateCmd)
}
