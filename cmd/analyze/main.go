package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/stockpulse/backend-go/internal/cache"
	"github.com/stockpulse/backend-go/internal/domain"
	"github.com/stockpulse/backend-go/internal/ingest"
	"github.com/stockpulse/backend-go/internal/service"
	"github.com/stockpulse/backend-go/internal/store"
	"github.com/stockpulse/backend-go/pkg/logger"
)

func main() {
	defaults := domain.DefaultThresholds()

	app := &cli.App{
		Name:  "analyze",
		Usage: "derive inventory health metrics from spreadsheet exports",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "cost", Usage: "item cost export (.csv/.xlsx)"},
			&cli.StringFlag{Name: "sales", Usage: "sales export (.csv/.xlsx)"},
			&cli.StringFlag{Name: "customers", Usage: "customer revenue export (.csv/.xlsx)"},
			&cli.StringFlag{Name: "suppliers", Usage: "supplier/PO export (.csv/.xlsx)"},
			&cli.StringFlag{Name: "out", Value: "./out", Usage: "directory for result set CSVs"},
			&cli.Float64Flag{Name: "slow-cost", Value: defaults.SlowMoverCost, Usage: "slow mover total cost floor"},
			&cli.Float64Flag{Name: "dead-cost", Value: defaults.DeadStockCost, Usage: "dead stock total cost floor"},
			&cli.Float64Flag{Name: "slow-days", Value: defaults.SlowMoverDays, Usage: "slow mover days-of-inventory floor"},
			&cli.Float64Flag{Name: "target-margin", Value: defaults.TargetMargin, Usage: "target gross margin (0-1)"},
			&cli.Float64Flag{Name: "ordering-cost", Value: defaults.OrderingCost, Usage: "fixed cost per order"},
			&cli.Float64Flag{Name: "holding-cost-rate", Value: defaults.HoldingCostRate, Usage: "annual holding cost as a fraction of unit cost"},
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("analyze failed")
	}
}

func run(c *cli.Context) error {
	logger.SetLevel(c.String("log-level"))

	th := domain.Thresholds{
		SlowMoverCost:   c.Float64("slow-cost"),
		DeadStockCost:   c.Float64("dead-cost"),
		SlowMoverDays:   c.Float64("slow-days"),
		TargetMargin:    c.Float64("target-margin"),
		OrderingCost:    c.Float64("ordering-cost"),
		HoldingCostRate: c.Float64("holding-cost-rate"),
	}

	inputs := map[domain.Category]string{
		domain.CategoryCost:     c.String("cost"),
		domain.CategorySales:    c.String("sales"),
		domain.CategoryCustomer: c.String("customers"),
		domain.CategorySupplier: c.String("suppliers"),
	}

	svc := service.NewInventoryService(store.New(), cache.NewNoopReportCache(), th)
	runID := uuid.NewString()
	log := logger.Log.With().Str("run_id", runID).Logger()

	// Categories are independent writers, so their files decode in parallel.
	g, ctx := errgroup.WithContext(c.Context)
	for category, path := range inputs {
		if path == "" {
			continue
		}
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			format, ok := ingest.DetectFormat(path)
			if !ok {
				return &domain.FormatError{Filename: path}
			}
			summary, err := svc.IngestFile(ctx, category, format, filepath.Base(path), data)
			if err != nil {
				return err
			}
			log.Info().
				Str("category", string(category)).
				Int("accepted", summary.RowsAccepted).
				Int("dropped", summary.RowsDropped).
				Msg("ingested")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report, err := svc.Report(c.Context, &th)
	if err != nil {
		return err
	}

	log.Info().
		Int("items", len(report.Items)).
		Int("slow_movers", len(report.SlowMovers)).
		Int("dead_stock", len(report.DeadStock)).
		Int("critical_stockouts", len(report.CriticalStockouts)).
		Int("warning_stockouts", len(report.WarningStockouts)).
		Int("price_opportunities", len(report.PriceOpportunities)).
		Msg("report computed")

	outDir := c.String("out")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	buckets := []string{
		service.BucketItems,
		service.BucketSlowMovers,
		service.BucketDeadStock,
		service.BucketCriticalStockouts,
		service.BucketWarningStockouts,
		service.BucketPriceOpportunities,
	}
	for _, bucket := range buckets {
		data, err := svc.ExportBucket(c.Context, bucket, &th)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, bucket+".csv")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Info().Str("path", path).Msg("result set written")
	}

	return nil
}
