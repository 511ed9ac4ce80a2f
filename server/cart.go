package server

import (
	"errors"
	"net/http"

	"github.com/example/bakeshop/pkg/cart"
	"github.com/example/bakeshop/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) getCart(c *gin.Context) {
	session := sessionID(c)
	ctx := c.Request.Context()

	entries, err := s.cart.Items(ctx, session)
	if err != nil {
		s.logger.Error("Failed to read cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read cart"})
		return
	}
	subtotal, err := s.cart.Subtotal(ctx, session)
	if err != nil {
		s.logger.Error("Failed to total cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    entries,
		"subtotal": subtotal,
	})
}

func (s *Server) addCartItem(c *gin.Context) {
	session := sessionID(c)

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
		return
	}

	ctx := c.Request.Context()
	product, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		s.logger.Error("Failed to get product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to cart"})
		return
	}
	if !product.InStock {
		c.JSON(http.StatusConflict, gin.H{"message": "Sold out"})
		return
	}

	if err := s.cart.Add(ctx, session, *product, req.Quantity); err != nil {
		s.logger.Error("Failed to add cart item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) updateCartItem(c *gin.Context) {
	session := sessionID(c)
	productID := c.Param("productId")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	err := s.cart.UpdateQuantity(c.Request.Context(), session, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not in cart"})
			return
		}
		s.logger.Error("Failed to update cart item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) removeCartItem(c *gin.Context) {
	session := sessionID(c)
	productID := c.Param("productId")

	if err := s.cart.Remove(c.Request.Context(), session, productID); err != nil {
		s.logger.Error("Failed to remove cart item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) listLikes(c *gin.Context) {
	likes, err := s.cart.Likes(c.Request.Context(), sessionID(c))
	if err != nil {
		s.logger.Error("Failed to list likes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch likes"})
		return
	}
	if likes == nil {
		likes = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (s *Server) toggleLike(c *gin.Context) {
	liked, err := s.cart.ToggleLike(c.Request.Context(), sessionID(c), c.Param("productId"))
	if err != nil {
		s.logger.Error("Failed to toggle like", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update likes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
