package domain

import (
	"fmt"
	"strings"
	"time"
)

// Option is one concrete choice inside a Variant. SubVariants hang off the
// option for multi-stage configuration; depth is not limited.
type Option struct {
	Label         string    `json:"label" bson:"label" validate:"required"`
	Value         string    `json:"value,omitempty" bson:"value,omitempty"`
	PriceModifier int64     `json:"priceModifier" bson:"priceModifier"`
	Stock         int       `json:"stock" bson:"stock" validate:"min=0"`
	SubVariants   []Variant `json:"subVariants,omitempty" bson:"subVariants,omitempty" validate:"dive"`
}

type Variant struct {
	Name    string   `json:"name" bson:"name" validate:"required"`
	Options []Option `json:"options" bson:"options" validate:"required,min=1,dive"`
}

type AddOn struct {
	ID    string `json:"id" bson:"id" validate:"required"`
	Name  string `json:"name" bson:"name" validate:"required"`
	Price int64  `json:"price" bson:"price" validate:"min=0"`
}

type Product struct {
	ID          string    `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	Slug        string    `json:"slug" bson:"slug" gorm:"uniqueIndex;size:160"`
	Name        string    `json:"name" bson:"name" gorm:"size:200" validate:"required"`
	Description string    `json:"description" bson:"description" gorm:"type:text"`
	Brand       string    `json:"brand,omitempty" bson:"brand,omitempty" gorm:"size:100"`
	Category    string    `json:"category" bson:"category" gorm:"size:100;index" validate:"required"`
	Price       int64     `json:"price" bson:"price" validate:"min=0"`
	Stock       int       `json:"stock" bson:"stock" validate:"min=0"`
	Images      []string  `json:"images" bson:"images" gorm:"serializer:json"`
	Variants    []Variant `json:"variants,omitempty" bson:"variants,omitempty" gorm:"serializer:json" validate:"dive"`
	AddOns      []AddOn   `json:"addOns,omitempty" bson:"addOns,omitempty" gorm:"serializer:json" validate:"dive"`
	Rating      float64   `json:"rating" bson:"rating"`
	NumReviews  int       `json:"numReviews" bson:"numReviews"`
	IsFeatured  bool      `json:"isFeatured" bson:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// OptionDetails is the snapshot of an option recorded on an order line.
type OptionDetails struct {
	Label         string `json:"label" bson:"label"`
	Value         string `json:"value,omitempty" bson:"value,omitempty"`
	PriceModifier int64  `json:"priceModifier" bson:"priceModifier"`
}

// Selection is a chosen option of a named variant together with the choices
// made in that option's sub-variants.
type Selection struct {
	Name          string        `json:"name" bson:"name"`
	OptionDetails OptionDetails `json:"optionDetails" bson:"optionDetails"`
	SubVariants   []Selection   `json:"subVariants,omitempty" bson:"subVariants,omitempty"`
}

type SelectedAddOn struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Price    int64  `json:"price" bson:"price"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// OptionPaths flattens selections into root-to-leaf chains. The leaf of each
// chain is the option whose stock an order line consumes.
func OptionPaths(selections []Selection) [][]Selection {
	var out [][]Selection
	var walk func(prefix []Selection, s Selection)
	walk = func(prefix []Selection, s Selection) {
		path := append(append([]Selection(nil), prefix...), s)
		if len(s.SubVariants) == 0 {
			out = append(out, path)
			return
		}
		for _, child := range s.SubVariants {
			walk(path, child)
		}
	}
	for _, s := range selections {
		walk(nil, s)
	}
	return out
}

func (s Selection) matches(o Option) bool {
	if s.OptionDetails.Value != "" && strings.EqualFold(s.OptionDetails.Value, o.Value) {
		return true
	}
	return s.OptionDetails.Label != "" && strings.EqualFold(s.OptionDetails.Label, o.Label)
}

// findOption locates the option picked by s among variants. An empty variant
// name searches every variant at that level.
func findOption(variants []Variant, s Selection) (*Option, error) {
	for vi := range variants {
		v := &variants[vi]
		if s.Name != "" && !strings.EqualFold(v.Name, s.Name) {
			continue
		}
		for oi := range v.Options {
			if s.matches(v.Options[oi]) {
				return &v.Options[oi], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: option %q of variant %q", ErrNotFound, s.OptionDetails.Label, s.Name)
}

// ResolveSelections returns a copy of selections with option details taken
// from the product's current variant tree instead of the caller's input.
func (p *Product) ResolveSelections(selections []Selection) ([]Selection, error) {
	return resolve(p.Variants, selections)
}

func resolve(variants []Variant, selections []Selection) ([]Selection, error) {
	if len(selections) == 0 {
		return nil, nil
	}
	out := make([]Selection, 0, len(selections))
	for _, s := range selections {
		opt, err := findOption(variants, s)
		if err != nil {
			return nil, err
		}
		children, err := resolve(opt.SubVariants, s.SubVariants)
		if err != nil {
			return nil, err
		}
		out = append(out, Selection{
			Name: s.Name,
			OptionDetails: OptionDetails{
				Label:         opt.Label,
				Value:         opt.Value,
				PriceModifier: opt.PriceModifier,
			},
			SubVariants: children,
		})
	}
	return out, nil
}

// AdjustStock adds delta to the stock counter addressed by path: the
// product's own stock for an empty path, otherwise the stock of the option
// at the end of the path.
func (p *Product) AdjustStock(path []Selection, delta int) error {
	counter := &p.Stock
	variants := p.Variants
	for _, s := range path {
		opt, err := findOption(variants, s)
		if err != nil {
			return err
		}
		counter = &opt.Stock
		variants = opt.SubVariants
	}
	if *counter+delta < 0 {
		return fmt.Errorf("%w: %s has %d left", ErrInsufficientStock, p.Name, *counter)
	}
	*counter += delta
	return nil
}

// StockAt reads the counter AdjustStock would change.
func (p *Product) StockAt(path []Selection) (int, error) {
	stock := p.Stock
	variants := p.Variants
	for _, s := range path {
		opt, err := findOption(variants, s)
		if err != nil {
			return 0, err
		}
		stock = opt.Stock
		variants = opt.SubVariants
	}
	return stock, nil
}

func (p *Product) FindAddOn(id string) (AddOn, bool) {
	for _, a := range p.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}
