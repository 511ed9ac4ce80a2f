package assets

import "github.com/example/bakeshop/pkg/models"

// ResolveProduct returns a copy of p with its image URL normalized.
func (r *Resolver) ResolveProduct(p models.Product) models.Product {
	p.Image = r.Normalize(p.Image)
	return p
}

// ResolveProducts normalizes image URLs across a fetched product slice.
func (r *Resolver) ResolveProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = r.ResolveProduct(p)
	}
	return out
}
