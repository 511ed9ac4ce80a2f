package client

import (
	"context"

	"github.com/example/bakeshop/pkg/models"
)

// Catalog adapts the client to the admin product console, which wants the
// full collection and simple CRUD verbs.
type Catalog struct {
	client *Client
}

func (c *Client) Catalog() *Catalog {
	return &Catalog{client: c}
}

func (c *Catalog) List(ctx context.Context) ([]models.Product, error) {
	return c.client.Products(ctx, Filter{Limit: 1000})
}

func (c *Catalog) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	return c.client.CreateProduct(ctx, p)
}

func (c *Catalog) Update(ctx context.Context, id string, p models.Product) (*models.Product, error) {
	return c.client.UpdateProduct(ctx, id, p)
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	return c.client.DeleteProduct(ctx, id)
}
