package domain

import "time"

type Review struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	ProductID string    `json:"product" bson:"product" gorm:"index:idx_review_product_user,unique;size:36"`
	UserID    string    `json:"user" bson:"user" gorm:"index:idx_review_product_user,unique;size:36"`
	Name      string    `json:"name" bson:"name" gorm:"size:120"`
	Rating    int       `json:"rating" bson:"rating" validate:"min=1,max=5"`
	Comment   string    `json:"comment" bson:"comment" gorm:"type:text" validate:"max=2000"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// RatingSummary is the aggregate stored back on the product.
type RatingSummary struct {
	Average float64
	Count   int
}
