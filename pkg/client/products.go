package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/example/bakeshop/pkg/models"
)

func (c *Client) Products(ctx context.Context, f Filter) ([]models.Product, error) {
	data, err := c.request(ctx, http.MethodGet, "/products", f.values(), nil)
	if err != nil {
		return nil, err
	}
	return decodeProducts(data)
}

func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	data, err := c.request(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	v := url.Values{}
	v.Set("q", query)
	data, err := c.request(ctx, http.MethodGet, "/products/search", v, nil)
	if err != nil {
		return nil, err
	}
	return decodeProducts(data)
}

func (c *Client) JustArrived(ctx context.Context) ([]models.Product, error) {
	featured := true
	return c.Products(ctx, Filter{Featured: &featured, Type: models.ProductTypeJustArrived})
}

func (c *Client) JustBaked(ctx context.Context) ([]models.Product, error) {
	featured := true
	return c.Products(ctx, Filter{Featured: &featured, Type: models.ProductTypeJustBaked})
}

func (c *Client) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	data, err := c.request(ctx, http.MethodPost, "/products", nil, p)
	if err != nil {
		return nil, err
	}
	var created models.Product
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, p models.Product) (*models.Product, error) {
	data, err := c.request(ctx, http.MethodPut, "/products/"+url.PathEscape(id), nil, p)
	if err != nil {
		return nil, err
	}
	var updated models.Product
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.request(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
	return err
}
