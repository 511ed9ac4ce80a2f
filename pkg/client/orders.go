package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/example/bakeshop/pkg/models"
)

// CheckoutRequest places an order from the caller's session cart.
type CheckoutRequest struct {
	UserID    string          `json:"userId"`
	Customer  models.Customer `json:"userProfile"`
	PromoCode string          `json:"promoCode,omitempty"`
}

func (c *Client) CreateOrder(ctx context.Context, req CheckoutRequest) (*models.Order, error) {
	data, err := c.request(ctx, http.MethodPost, "/orders", nil, req)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Orders(ctx context.Context, userID string) ([]models.Order, error) {
	v := url.Values{}
	if userID != "" {
		v.Set("userId", userID)
	}
	data, err := c.request(ctx, http.MethodGet, "/orders", v, nil)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		var wrapper struct {
			Orders []models.Order `json:"orders"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, err
		}
		return wrapper.Orders, nil
	}
	return orders, nil
}

func (c *Client) Order(ctx context.Context, id string) (*models.Order, error) {
	data, err := c.request(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
