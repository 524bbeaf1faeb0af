package http

import (
	"net/http"

	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, token, err := h.svc.Auth.SignUp(c.Request.Context(), services.SignUpInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, AuthResponse{Token: token, User: u})
}

func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, token, err := h.svc.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, AuthResponse{Token: token, User: u})
}

func (h *Handler) Me(c *gin.Context) {
	u, err := h.svc.Auth.Me(c.Request.Context(), actor(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.svc.Auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "if the email is registered, a reset link has been sent"})
}

func (h *Handler) ValidateResetToken(c *gin.Context) {
	r, err := h.svc.Auth.ValidateResetToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"valid": true, "expiresAt": r.ExpiresAt})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.svc.Auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "password updated"})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.svc.Auth.ChangePassword(c.Request.Context(), actor(c).UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "password updated"})
}

func (h *Handler) GetWishlist(c *gin.Context) {
	products, err := h.svc.Wishlist.List(c.Request.Context(), actor(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, products)
}

func (h *Handler) AddToWishlist(c *gin.Context) {
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	ids, err := h.svc.Wishlist.Add(c.Request.Context(), actor(c).UserID, req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"wishlist": ids})
}

func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	ids, err := h.svc.Wishlist.Remove(c.Request.Context(), actor(c).UserID, c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"wishlist": ids})
}
