package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/maintdesk/workorder-service/internal/config"
	"github.com/maintdesk/workorder-service/internal/database"
	"github.com/maintdesk/workorder-service/internal/kv"
	"github.com/maintdesk/workorder-service/internal/logging"
	"github.com/maintdesk/workorder-service/internal/service"
	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored work order on this device",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deletion")
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return errors.New("refusing to clear without --yes")
	}
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	db, err := database.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := database.MigrateUp(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	workOrders := service.NewWorkOrderService(kv.NewGormStore(db), logging.New(cfg.LogLevel))
	if err := workOrders.ClearAll(context.Background()); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	log.Println("clear: work orders removed")
	return nil
}
