package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/maintdesk/workorder-service/internal/config"
	"github.com/maintdesk/workorder-service/internal/database"
	"github.com/maintdesk/workorder-service/internal/kv"
	"github.com/maintdesk/workorder-service/internal/logging"
	"github.com/maintdesk/workorder-service/internal/service"
	"github.com/spf13/cobra"
)

var importMode string

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Import work orders from a spreadsheet without running the server",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importMode, "mode", service.ModeMerge, "replace or merge (merge keeps notes/status)")
}

func runImport(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	db, err := database.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := database.MigrateUp(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	logger := logging.New(cfg.LogLevel)
	workOrders := service.NewWorkOrderService(kv.NewGormStore(db), logger)
	imports := service.NewImportService(workOrders, logger)

	ctx := context.Background()
	summary, err := imports.Preview(ctx, f, filepath.Base(args[0]))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	log.Printf("import: parsed %d rows (%d with WT-ID)", summary.Rows, summary.WithExternalID)
	for _, w := range summary.Warnings {
		log.Printf("import: warning: %s", w)
	}

	count, err := imports.Commit(ctx, importMode)
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	log.Printf("import: done, %d work orders in collection (mode=%s)", count, importMode)
	return nil
}
