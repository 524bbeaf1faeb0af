package domain

import (
	"strings"
	"time"
)

const MaxDiscountPercent = 95

type Sale struct {
	ID              string    `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	Name            string    `json:"name" bson:"name" gorm:"size:160" validate:"required"`
	Categories      []string  `json:"categories" bson:"categories" gorm:"serializer:json"`
	Products        []string  `json:"products" bson:"products" gorm:"serializer:json"`
	DiscountPercent int       `json:"discountPercent" bson:"discountPercent" validate:"min=0,max=95"`
	ExpiresAt       time.Time `json:"expiresAt" bson:"expiresAt" gorm:"index" validate:"required"`
	Active          bool      `json:"active" bson:"active" gorm:"index"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (s Sale) Live(now time.Time) bool {
	return s.Active && now.Before(s.ExpiresAt)
}

// Applies reports whether the sale discounts p. A sale naming neither
// categories nor products covers the whole catalog.
func (s Sale) Applies(p *Product, now time.Time) bool {
	if p == nil || !s.Live(now) {
		return false
	}
	if len(s.Categories) == 0 && len(s.Products) == 0 {
		return true
	}
	for _, c := range s.Categories {
		if strings.EqualFold(c, p.Category) {
			return true
		}
	}
	for _, id := range s.Products {
		if id == p.ID || id == p.Slug {
			return true
		}
	}
	return false
}
