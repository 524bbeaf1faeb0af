package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra"
)

var demoCategories = []domain.Category{
	{Name: "Lighting", Description: "Lamps and fixtures"},
	{Name: "Furniture", Description: "Chairs, tables and storage"},
}

func demoProducts() []domain.Product {
	return []domain.Product{
		{
			Name:     "Arc Floor Lamp",
			Category: "lighting",
			Price:    4999,
			Stock:    12,
			Images:   []string{"/img/arc-lamp.jpg"},
			Variants: []domain.Variant{{
				Name: "Finish",
				Options: []domain.Option{
					{Label: "Matte Black", Value: "black", Stock: 6},
					{Label: "Brass", Value: "brass", PriceModifier: 800, Stock: 4, SubVariants: []domain.Variant{{
						Name: "Shade",
						Options: []domain.Option{
							{Label: "Linen", Stock: 2},
							{Label: "Glass", PriceModifier: 300, Stock: 2, SubVariants: []domain.Variant{{
								Name:    "Bulb",
								Options: []domain.Option{{Label: "Warm", Stock: 1}, {Label: "Daylight", Stock: 1}},
							}}},
						},
					}}},
				},
			}},
			AddOns: []domain.AddOn{{ID: "smart-plug", Name: "Smart plug", Price: 599}},
		},
		{
			Name:     "Oak Side Table",
			Category: "furniture",
			Price:    7999,
			Stock:    5,
			Images:   []string{"/img/oak-table.jpg"},
			Variants: []domain.Variant{{
				Name: "Size",
				Options: []domain.Option{
					{Label: "Small", Stock: 3},
					{Label: "Large", PriceModifier: 1500, Stock: 2},
				},
			}},
			AddOns: []domain.AddOn{{ID: "assembly", Name: "Assembly", Price: 999}},
		},
		{
			Name:       "Linen Cushion",
			Category:   "furniture",
			Price:      1299,
			Stock:      40,
			IsFeatured: true,
		},
	}
}

// seedCatalog creates the demo records; records that already exist are
// skipped so the command can be rerun.
func seedCatalog(ctx context.Context, c infra.StoreClientInterface, now time.Time) error {
	for i := range demoCategories {
		cat := demoCategories[i]
		if _, err := c.CreateCategory(ctx, &cat); err != nil && !exists(err) {
			return err
		}
	}

	for _, p := range demoProducts() {
		created, err := c.CreateProduct(ctx, &p)
		if exists(err) {
			log.Printf("product %q already present", p.Name)
			continue
		}
		if err != nil {
			return err
		}
		log.Printf("created product %s (%s)", created.Slug, created.ID)
	}

	sale, err := c.CreateSale(ctx, infra.SaleSpec{
		Name:            "Lighting week",
		Categories:      []string{"lighting"},
		DiscountPercent: 15,
		ExpiresAt:       now.Add(7 * 24 * time.Hour),
	})
	if err != nil {
		return err
	}
	log.Printf("created sale %s (%d%% off)", sale.Name, sale.DiscountPercent)
	return nil
}

func exists(err error) bool {
	var apiErr *infra.APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}
