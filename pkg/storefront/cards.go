package storefront

import (
	"math"

	"github.com/example/bakeshop/pkg/models"
)

// Card is one displayed product merged with the session's cart and liked
// state. Building cards never mutates the product list or the stores.
type Card struct {
	Product models.Product

	// EffectiveDiscount is derived from prices, never from the stored
	// discount field, which may be stale.
	EffectiveDiscount int
	HasDiscount       bool

	// CartQuantity is 0 when the product is not in the cart, and always 0
	// for sold-out products: quantity controls are never shown for them.
	CartQuantity int
	Liked        bool
	SoldOut      bool
}

// EffectiveDiscount computes the displayed discount percentage. A
// discount exists only when originalPrice exceeds price.
func EffectiveDiscount(p models.Product) (int, bool) {
	if p.OriginalPrice <= p.Price || p.OriginalPrice <= 0 {
		return 0, false
	}
	pct := int(math.Round((1 - p.Price/p.OriginalPrice) * 100))
	return pct, true
}

// BuildCard merges one product with cart quantity and liked membership.
func BuildCard(p models.Product, cartQuantity int, liked bool) Card {
	pct, has := EffectiveDiscount(p)
	card := Card{
		Product:           p,
		EffectiveDiscount: pct,
		HasDiscount:       has,
		Liked:             liked,
		SoldOut:           !p.InStock,
	}
	if !card.SoldOut {
		card.CartQuantity = cartQuantity
	}
	return card
}

// BuildCards merges a displayed product slice with per-product cart
// quantities and the liked set.
func BuildCards(products []models.Product, quantities map[string]int, liked map[string]bool) []Card {
	cards := make([]Card, len(products))
	for i, p := range products {
		cards[i] = BuildCard(p, quantities[p.ID], liked[p.ID])
	}
	return cards
}
