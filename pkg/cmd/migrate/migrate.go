package migrate

import (
	"github.com/spf13/cobra"

	"github.com/mpapenbr/accstats/log"
	"github.com/mpapenbr/accstats/pkg/cmd/cmdutil"
	"github.com/mpapenbr/accstats/pkg/config"
	dbmigrate "github.com/mpapenbr/accstats/pkg/db/migrate"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration(cmd)
		},
	}

	cmd.Flags().StringVarP(&config.MigrationSourceURL,
		"migrationSourceUrl",
		"m",
		"",
		"url to migration files (default: migrations built into the binary)")

	return cmd
}

func startMigration(cmd *cobra.Command) error {
	if _, _, err := cmdutil.SetupLogger(); err != nil {
		return err
	}
	if err := cmdutil.WaitForDB(cmd.Context()); err != nil {
		log.Error("database not ready", log.ErrorField(err))
		return err
	}

	var err error
	if config.MigrationSourceURL == "" {
		log.Info("Using embedded migrations")
		err = dbmigrate.MigrateDb(config.DB)
	} else {
		log.Info("Using migrations files at", log.String("source", config.MigrationSourceURL))
		err = dbmigrate.MigrateFromSource(config.MigrationSourceURL, config.DB)
	}
	if err != nil {
		log.Error("Migration failed", log.ErrorField(err))
		return err
	}
	log.Info("Database is up to date")
	return nil
}
