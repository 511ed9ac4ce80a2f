package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/bakeshop/pkg/models"
	"github.com/example/bakeshop/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) listProducts(c *gin.Context) {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Type:     c.Query("type"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if raw := c.Query("featured"); raw != "" {
		featured := raw == "true"
		filter.Featured = &featured
	}

	products, total, err := s.products.List(c.Request.Context(), filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": s.resolver.ResolveProducts(products),
		"total":    total,
	})
}

func (s *Server) searchProducts(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"products": []models.Product{}})
		return
	}

	products, err := s.products.Search(c.Request.Context(), q)
	if err != nil {
		s.logger.Error("Failed to search products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to search products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": s.resolver.ResolveProducts(products)})
}

func (s *Server) getProduct(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	// Try cache first
	if s.cache != nil {
		if cached, err := s.cache.GetProductCache(ctx, id); err == nil {
			c.JSON(http.StatusOK, s.resolver.ResolveProduct(*cached))
			return
		}
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		s.logger.Error("Failed to get product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch product"})
		return
	}

	if s.cache != nil {
		s.cache.CacheProduct(ctx, product)
	}
	c.JSON(http.StatusOK, s.resolver.ResolveProduct(*product))
}

func (s *Server) createProduct(c *gin.Context) {
	var product models.Product
	if err := c.BindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if product.Name == "" || product.Category == "" || product.Price <= 0 || product.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, category, price, and image are required"})
		return
	}
	if product.OriginalPrice < product.Price {
		product.OriginalPrice = product.Price
	}
	if product.ProductType == "" {
		product.ProductType = models.ProductTypeRegular
	}

	if err := s.products.Create(c.Request.Context(), &product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
		return
	}

	s.audit("create_product", product.ID, map[string]interface{}{
		"name": product.Name, "category": product.Category,
	})
	c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	id := c.Param("id")

	// The body carries changed fields only; binding to a map keeps
	// explicit false/zero updates distinguishable from absent fields.
	var fields map[string]interface{}
	if err := c.BindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, err := s.products.Update(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		s.logger.Error("Failed to update product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}

	if s.cache != nil {
		s.cache.InvalidateProduct(c.Request.Context(), id)
	}
	s.audit("update_product", id, map[string]interface{}{"fields": len(fields)})
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := s.products.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		s.logger.Error("Failed to delete product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
		return
	}

	if s.cache != nil {
		s.cache.InvalidateProduct(c.Request.Context(), id)
	}
	s.audit("delete_product", id, nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}
