// Command report exports an Excel workbook for an ingested dataset: profile
// and correlation sheets, plus the narrative story when available.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"insightflow/adapters/backend"
	"insightflow/adapters/excel"
	"insightflow/domain/core"
	"insightflow/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	datasetFlag := flag.String("dataset", "", "dataset ID to report on (required)")
	outFlag := flag.String("o", "report.xlsx", "output workbook path")
	timeoutFlag := flag.Duration("timeout", 2*time.Minute, "overall fetch timeout")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("[Report] No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Report] Failed to load configuration: %v", err)
	}

	dataset, err := core.ParseDatasetID(*datasetFlag)
	if err != nil {
		log.Fatalf("[Report] -dataset is required: %v", err)
	}

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	reporter := excel.NewReporter(client, client)

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	report, err := reporter.Fetch(ctx, dataset)
	if err != nil {
		log.Fatalf("[Report] Failed to fetch report material: %v", err)
	}
	if err := reporter.WriteFile(report, *outFlag); err != nil {
		log.Fatalf("[Report] Failed to write workbook: %v", err)
	}
	log.Printf("[Report] Wrote %s for dataset %s", *outFlag, dataset)
}
