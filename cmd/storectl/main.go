// Command storectl prints back-office reports from a running storefront API
// and seeds a demo catalog.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"storefront-service/internal/config"
	"storefront-service/internal/infra"
)

func main() {
	_ = config.Load() // picks up .env for the STORE_* variables

	api := flag.String("api", envOr("STORE_API_URL", "http://localhost:8080"), "storefront API base URL")
	token := flag.String("token", os.Getenv("STORE_ADMIN_TOKEN"), "admin bearer token")
	report := flag.String("report", "", "report to print: stock, sales or orders")
	seed := flag.Bool("seed", false, "insert the demo catalog")
	lowStock := flag.Int("low", 3, "stock level flagged in the stock report")
	timeout := flag.Duration("timeout", 10*time.Second, "per request timeout")
	flag.Parse()

	if *report == "" && !*seed {
		flag.Usage()
		os.Exit(2)
	}

	client := infra.NewStoreClient(*api, *token, *timeout)
	ctx := context.Background()

	if *seed {
		if err := seedCatalog(ctx, client, time.Now()); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	var err error
	switch *report {
	case "":
	case "stock":
		err = stockReport(ctx, client, os.Stdout, *lowStock)
	case "sales":
		err = salesReport(ctx, client, os.Stdout, time.Now())
	case "orders":
		err = ordersReport(ctx, client, os.Stdout)
	default:
		log.Fatalf("unknown report %q", *report)
	}
	if err != nil {
		log.Fatalf("%s report: %v", *report, err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
