package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/Harshana2/lims/internal/bootstrap"
	"github.com/Harshana2/lims/internal/config"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/Harshana2/lims/internal/lims/seed"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

func setup() (*runtime, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := bootstrap.InitLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := bootstrap.InitDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger, db: db}, nil
}

func (rt *runtime) close() {
	if sqlDB, err := rt.db.DB(); err == nil {
		sqlDB.Close()
	}
	rt.logger.Sync()
}

var rootCmd = &cobra.Command{
	Use:           "limsctl",
	Short:         "LIMS administration tool",
	Long:          "limsctl prepares the LIMS database: schema migration and demo data seeding.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the LIMS tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := bootstrap.Migrate(rt.db); err != nil {
			return err
		}
		rt.logger.Info("Migration completed")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users, chemists, test parameters, requests and CRFs",
	Long: `seed migrates the schema, upserts the test parameter catalog and, when the
users table is empty, loads the demo laboratory data. Seeded users share the
password from lab.seed_password (LAB_SEED_PASSWORD).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := bootstrap.Migrate(rt.db); err != nil {
			return err
		}

		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			password = rt.cfg.Lab.SeedPassword
		}

		repos := repository.NewRepositories(rt.db)
		services := service.NewServices(repos, rt.cfg, service.Deps{}, rt.logger)
		res, err := seed.NewSeeder(repos, services, password, rt.logger).Run(context.Background())
		if err != nil {
			return err
		}

		out, _ := json.MarshalIndent(res, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	seedCmd.Flags().String("password", "", "password for the seeded users (defaults to lab.seed_password)")
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
