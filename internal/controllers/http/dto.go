package http

import (
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/services"
)

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" form:"status"`
}

type CancelRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

type CancelResponse struct {
	Order *domain.Order `json:"order"`
	Stock any           `json:"stock,omitempty"`
}

// SaleRequest is the body of POST and PUT /sale. PUT also accepts the id as
// a query parameter.
type SaleRequest struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Categories      []string  `json:"categories"`
	Products        []string  `json:"products"`
	DiscountPercent int       `json:"discountPercent"`
	ExpiresAt       time.Time `json:"expiresAt"`
	Active          *bool     `json:"active"`
}

func (r SaleRequest) input() services.SaleInput {
	return services.SaleInput{
		Name:            r.Name,
		Categories:      r.Categories,
		Products:        r.Products,
		DiscountPercent: r.DiscountPercent,
		ExpiresAt:       r.ExpiresAt,
		Active:          r.Active,
	}
}

type ReviewResponse struct {
	Review     *domain.Review `json:"review"`
	Rating     float64        `json:"rating"`
	NumReviews int            `json:"numReviews"`
}

type WishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}
