package http

import (
	"net/http"
	"strconv"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	order, err := h.svc.Orders.Checkout(c.Request.Context(), actor(c).UserID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, order)
}

// ListOrders returns the caller's orders; admins see every order with
// ?all=true and may filter by status.
func (h *Handler) ListOrders(c *gin.Context) {
	a := actor(c)
	f := repository.OrderFilter{UserID: a.UserID, Page: page(c)}
	if all, _ := strconv.ParseBool(c.Query("all")); all && a.Admin() {
		f.UserID = c.Query("user")
	}
	if s := c.Query("status"); s != "" {
		st, err := domain.ParseOrderStatus(s)
		if err != nil {
			writeError(c, err)
			return
		}
		f.Status = st
	}
	orders, total, err := h.svc.Orders.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, paged(orders, total, f.Page))
}

func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.svc.Orders.Get(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, o)
}

func (h *Handler) GetOrderStatus(c *gin.Context) {
	view, err := h.svc.Orders.Status(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, view)
}

// UpdateOrderStatus takes the target status from the JSON body or, failing
// that, the status query parameter.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req StatusRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	if req.Status == "" {
		req.Status = c.Query("status")
	}
	if req.Status == "" {
		fail(c, http.StatusBadRequest, "status is required")
		return
	}
	o, report, err := h.svc.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	if report != nil {
		ok(c, http.StatusOK, CancelResponse{Order: o, Stock: report})
		return
	}
	ok(c, http.StatusOK, services.NewStatusView(o))
}

func (h *Handler) CancelOrder(c *gin.Context) {
	var req CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	o, report, err := h.svc.Orders.Cancel(c.Request.Context(), c.Param("id"), req.CancellationReason, actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, CancelResponse{Order: o, Stock: report})
}

func (h *Handler) CreatePayment(c *gin.Context) {
	intent, err := h.svc.Orders.CreatePayment(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, intent)
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var req services.PaymentConfirmation
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	o, err := h.svc.Orders.VerifyPayment(c.Request.Context(), c.Param("id"), req, actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, o)
}
