// Package pricing composes line prices from a base price, the selected
// variant options, add-ons and an optional sale discount.
package pricing

import (
	"storefront-service/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ClampDiscount limits pct to the accepted [0, 95] range.
func ClampDiscount(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > domain.MaxDiscountPercent {
		return domain.MaxDiscountPercent
	}
	return pct
}

// CalculateSalePrice returns round(base * (1 - pct/100)), rounding half away
// from zero.
func CalculateSalePrice(base int64, pct int) int64 {
	pct = ClampDiscount(pct)
	if pct == 0 {
		return base
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(pct))).Div(hundred)
	return decimal.NewFromInt(base).Mul(factor).Round(0).IntPart()
}

// SelectionModifier sums the price modifiers of every selected option,
// including options chosen in sub-variants.
func SelectionModifier(selections []domain.Selection) int64 {
	var total int64
	for _, s := range selections {
		total += s.OptionDetails.PriceModifier
		total += SelectionModifier(s.SubVariants)
	}
	return total
}

func AddOnTotal(addOns []domain.SelectedAddOn) int64 {
	var total int64
	for _, a := range addOns {
		if a.Quantity <= 0 {
			continue
		}
		total += a.Price * int64(a.Quantity)
	}
	return total
}

type Quote struct {
	BasePrice       int64
	Selections      []domain.Selection
	AddOns          []domain.SelectedAddOn
	DiscountPercent int
	Quantity        int
}

type Breakdown struct {
	BasePrice       int64 `json:"basePrice"`
	DiscountPercent int   `json:"discountPercent"`
	DiscountedBase  int64 `json:"discountedBase"`
	VariantTotal    int64 `json:"variantTotal"`
	AddOnTotal      int64 `json:"addOnTotal"`
	UnitPrice       int64 `json:"unitPrice"`
	Quantity        int   `json:"quantity"`
	LineTotal       int64 `json:"lineTotal"`
}

// Compose prices a single unit and the whole line. The discount is applied
// to the base price only; variant modifiers and add-ons are added at full
// price.
func Compose(q Quote) Breakdown {
	pct := ClampDiscount(q.DiscountPercent)
	qty := q.Quantity
	if qty <= 0 {
		qty = 1
	}
	b := Breakdown{
		BasePrice:       q.BasePrice,
		DiscountPercent: pct,
		DiscountedBase:  CalculateSalePrice(q.BasePrice, pct),
		VariantTotal:    SelectionModifier(q.Selections),
		AddOnTotal:      AddOnTotal(q.AddOns),
		Quantity:        qty,
	}
	b.UnitPrice = b.DiscountedBase + b.VariantTotal + b.AddOnTotal
	b.LineTotal = b.UnitPrice * int64(qty)
	return b
}
