package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/example/bakeshop/pkg/models"
	"github.com/example/bakeshop/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type checkoutRequest struct {
	UserID    string          `json:"userId"`
	Customer  models.Customer `json:"userProfile"`
	PromoCode string          `json:"promoCode"`
}

// createOrder places an order from the caller's session cart. Item
// snapshots capture name, image, category, and price at order time.
func (s *Server) createOrder(c *gin.Context) {
	if !s.hours.IsOpen(time.Now()) {
		c.JSON(http.StatusForbidden, gin.H{"message": s.hours.Message(time.Now())})
		return
	}

	session := sessionID(c)
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing session id"})
		return
	}

	var req checkoutRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	entries, err := s.cart.Items(ctx, session)
	if err != nil {
		s.logger.Error("Failed to read cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read cart"})
		return
	}
	if len(entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
		return
	}

	items := make([]models.OrderItem, len(entries))
	var subtotal float64
	for i, entry := range entries {
		items[i] = models.OrderItem{
			ProductID: entry.Product.ID,
			Name:      entry.Product.Name,
			Image:     entry.Product.Image,
			Category:  entry.Product.Category,
			Price:     entry.Product.Price,
			Quantity:  entry.Quantity,
		}
		subtotal += entry.Product.Price * float64(entry.Quantity)
	}
	subtotal = round2(subtotal)

	var discount float64
	if req.PromoCode != "" {
		pct, ok := s.config.Store.PromoCodes[req.PromoCode]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid promo code"})
			return
		}
		discount = round2(subtotal * pct / 100)
	}
	tax := round2((subtotal - discount) * s.config.Store.TaxRate)

	order := &models.Order{
		UserID:         req.UserID,
		Items:          items,
		Subtotal:       subtotal,
		Tax:            tax,
		DiscountAmount: discount,
		PromoCode:      req.PromoCode,
		Total:          round2(subtotal - discount + tax),
		Customer:       req.Customer,
		Status:         models.OrderStatusPending,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}

	// Checkout is not transactional: a failed cart clear leaves the order
	// in place.
	if err := s.cart.Clear(ctx, session); err != nil {
		s.logger.Warn("Failed to clear cart after checkout", zap.Error(err))
	}

	c.JSON(http.StatusCreated, order)
}

func (s *Server) listOrders(c *gin.Context) {
	ctx := c.Request.Context()

	if userID := c.Query("userId"); userID != "" {
		orders, err := s.orders.ListByUser(ctx, userID)
		if err != nil {
			s.logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
		return
	}

	// Listing the whole collection is the admin console's path.
	header := c.GetHeader("Authorization")
	if header != "Bearer "+s.config.Store.AdminToken || s.config.Store.AdminToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

func (s *Server) getOrder(c *gin.Context) {
	id := c.Param("id")
	order, err := s.orders.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		s.logger.Error("Failed to get order", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order status"})
		return
	}

	if err := s.orders.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		s.logger.Error("Failed to update order status", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order status"})
		return
	}

	s.audit("update_order_status", id, map[string]interface{}{"status": string(req.Status)})
	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"status":  req.Status,
		"message": "Order status updated successfully",
	})
}
