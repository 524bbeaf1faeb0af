// Package stock moves inventory counters when orders are placed or cancelled.
package stock

import (
	"context"
	"fmt"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
)

// Result is the outcome of restoring a single order line.
type Result struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Restored  bool   `json:"restored"`
	Error     string `json:"error,omitempty"`
}

type Report struct {
	Results  []Result `json:"results"`
	Restored int      `json:"restored"`
	Failed   int      `json:"failed"`
}

func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Restored {
			out = append(out, res)
		}
	}
	return out
}

// ChangeHook runs after a product's counters were written.
type ChangeHook func(ctx context.Context, p *domain.Product)

type Manager struct {
	products repository.ProductRepository
	onChange ChangeHook
}

func NewManager(products repository.ProductRepository, onChange ChangeHook) *Manager {
	return &Manager{products: products, onChange: onChange}
}

// Restore gives back the stock consumed by items. Every line is processed
// independently; a failing line is reported and the rest continue.
func (m *Manager) Restore(ctx context.Context, items []domain.OrderItem) Report {
	report := Report{Results: make([]Result, 0, len(items))}
	for _, item := range items {
		res := Result{ProductID: item.ProductID, Name: item.Name, Quantity: item.Quantity}
		if err := m.adjust(ctx, item, item.Quantity); err != nil {
			log.Printf("stock restore failed for product %s: %v", item.ProductID, err)
			res.Error = err.Error()
			report.Failed++
		} else {
			res.Restored = true
			report.Restored++
		}
		report.Results = append(report.Results, res)
	}
	return report
}

// Reserve takes the stock for items. When a line cannot be served the lines
// already taken are given back and the first error is returned.
func (m *Manager) Reserve(ctx context.Context, items []domain.OrderItem) error {
	for i, item := range items {
		if err := m.adjust(ctx, item, -item.Quantity); err != nil {
			if rep := m.Restore(ctx, items[:i]); rep.Failed > 0 {
				log.Printf("stock reserve rollback left %d lines unrestored", rep.Failed)
			}
			return err
		}
	}
	return nil
}

func (m *Manager) adjust(ctx context.Context, item domain.OrderItem, delta int) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	p, err := m.products.FindByID(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("product %s: %w", item.ProductID, err)
	}

	paths := domain.OptionPaths(item.Variants)
	if len(paths) == 0 {
		paths = [][]domain.Selection{nil}
	}
	for _, path := range paths {
		if err := p.AdjustStock(path, delta); err != nil {
			return err
		}
	}

	if err := m.products.UpdateStock(ctx, p); err != nil {
		return fmt.Errorf("product %s: %w", item.ProductID, err)
	}
	if m.onChange != nil {
		m.onChange(ctx, p)
	}
	return nil
}
