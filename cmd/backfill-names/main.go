// Command backfill-names renames products still carrying the "Unknown Product"
// placeholder once a UPC provider recognises them.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-3pl-warehouse/internal/config"
	"go-3pl-warehouse/internal/repository"
	"go-3pl-warehouse/internal/service"
	"go-3pl-warehouse/internal/upc"
	"go-3pl-warehouse/pkg/database"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	db := database.ConnectDB(cfg.DBDriver, cfg.DSN)

	lookup := upc.NewService(
		&upc.UPCItemDB{BaseURL: cfg.UPCItemDBURL, Timeout: cfg.UPCTimeout},
		&upc.OpenFoodFacts{BaseURL: cfg.OpenFoodFactsURL, Timeout: cfg.UPCTimeout},
	)
	catalog := service.NewCatalogService(repository.NewProductRepo(db), lookup, cfg.BackfillDelay)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := catalog.BackfillProductNames(ctx)
	if err != nil {
		logrus.Fatalf("backfill: %v", err)
	}
	for _, e := range report.Errors {
		logrus.Warn(e)
	}
	logrus.Info(report.Message)
}
