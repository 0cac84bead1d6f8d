package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"shop-order-service/internal/domain"
	"shop-order-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type Handler struct {
	orders   *services.OrderService
	payments *services.PaymentService
	rdb      *redis.Client
}

func NewHandler(orders *services.OrderService, payments *services.PaymentService, rdb *redis.Client) *Handler {
	return &Handler{orders: orders, payments: payments, rdb: rdb}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/cart/items", h.CreateCartLine)
	r.GET("/cart/:userId", h.GetCart)
	r.GET("/cart/:userId/count", h.GetCartCount)
	r.POST("/orders/checkout", h.Checkout)
	r.POST("/orders/buy-now", h.BuyNow)
	r.POST("/orders/replace", h.ReplaceOrder)
	r.GET("/orders/:orderId", h.GetOrder)
	r.PUT("/orders/:orderId/status", h.UpdateOrderStatus)
	r.POST("/orders/:orderId/cancel", h.CancelOrder)
	r.GET("/users/:userId/orders", h.GetOrdersByUser)
	r.POST("/payments/reconcile", h.ReconcilePayment)
	r.GET("/flash-sales/current", h.GetCurrentFlashSale)
	r.GET("/products/:productId", h.GetProduct)
}

func statusForError(err error) int {
	var transition *domain.InvalidTransitionError
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrCouponNotFound),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrNoActiveFlashSale),
		errors.Is(err, domain.ErrProductNotInFlashSale):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrCouponExhausted),
		errors.Is(err, domain.ErrAmountMismatch):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCouponExpired),
		errors.Is(err, domain.ErrCouponInactive):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func toLineItems(lines []OrderLineRequest) []services.LineItem {
	out := make([]services.LineItem, 0, len(lines))
	for _, ln := range lines {
		out = append(out, services.LineItem{
			ProductID:         ln.ProductID,
			Quantity:          ln.Quantity,
			UnitPrice:         ln.UnitPrice,
			OriginalUnitPrice: ln.OriginalUnitPrice,
			IsFlashSale:       ln.IsFlashSale,
		})
	}
	return out
}

func (h *Handler) CreateCartLine(c *gin.Context) {
	var req CartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.CreateCartLine(c.Request.Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.invalidateCart(req.UserID)
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetCart(c *gin.Context) {
	userID := c.Param("userId")

	orders, err := h.orders.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetCartCount(c *gin.Context) {
	userID := c.Param("userId")
	cacheKey := "cart:count:" + userID

	ctx := c.Request.Context()
	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var count int64
			if json.Unmarshal([]byte(b), &count) == nil {
				c.JSON(http.StatusOK, gin.H{"count": count})
				return
			}
		}
	}

	count, err := h.orders.GetCartCount(ctx, userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(count); err == nil {
			h.rdb.Set(ctx, cacheKey, data, 10*time.Second)
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Checkout(c.Request.Context(), req.UserID, req.ShippingAddress, req.CustomerNote, req.CouponID, toLineItems(req.Lines))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.invalidateCart(req.UserID)
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) BuyNow(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.BuyNow(c.Request.Context(), req.UserID, toLineItems(req.Lines), req.ShippingAddress, req.CustomerNote, req.CouponID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ReplaceOrder(c *gin.Context) {
	var req ReplaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.ReplaceOrder(c.Request.Context(), req.UserID, req.OldOrderIDs, toLineItems(req.Lines), req.ShippingAddress, req.CustomerNote, req.CouponID, req.TotalAmount)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.invalidateCart(req.UserID)
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrderByID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetOrdersByUser(c *gin.Context) {
	orders, err := h.orders.GetOrdersByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.orders.UpdateOrderStatus(c.Request.Context(), c.Param("orderId"), domain.OrderStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orders.CancelOrder(c.Request.Context(), c.Param("orderId"), req.Reason); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ReconcilePayment(c *gin.Context) {
	var req ReconcilePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.payments.Reconcile(c.Request.Context(), req.TransactionID, *req.Paid, req.Amount); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetCurrentFlashSale(c *gin.Context) {
	sale, err := h.orders.GetCurrentFlashSale(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.orders.GetProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) invalidateCart(userID string) {
	if h.rdb == nil {
		return
	}
	h.rdb.Del(context.Background(), "cart:count:"+userID)
}
