package storefront

import (
	"testing"

	"github.com/example/bakeshop/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveDiscount(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		original float64
		wantPct  int
		wantHas  bool
	}{
		{"80 against 100 is 20 percent", 80, 100, 20, true},
		{"equal prices no discount", 100, 100, 0, false},
		{"original below price no discount", 100, 90, 0, false},
		{"zero original no discount", 50, 0, 0, false},
		{"rounds to nearest percent", 66.7, 100, 33, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, has := EffectiveDiscount(models.Product{Price: tt.price, OriginalPrice: tt.original})
			assert.Equal(t, tt.wantPct, pct)
			assert.Equal(t, tt.wantHas, has)
		})
	}
}

// The stored discount field is ignored entirely; only prices decide.
func TestEffectiveDiscountIgnoresStoredField(t *testing.T) {
	p := models.Product{Price: 80, OriginalPrice: 100, Discount: 50}
	pct, has := EffectiveDiscount(p)
	assert.True(t, has)
	assert.Equal(t, 20, pct)

	p = models.Product{Price: 100, OriginalPrice: 100, Discount: 50}
	_, has = EffectiveDiscount(p)
	assert.False(t, has)
}

func TestBuildCardSoldOut(t *testing.T) {
	p := models.Product{ID: "p1", InStock: false}

	// Sold-out cards never carry a cart quantity, even when the cart
	// still holds a stale entry.
	card := BuildCard(p, 3, true)
	assert.True(t, card.SoldOut)
	assert.Equal(t, 0, card.CartQuantity)
	assert.True(t, card.Liked)
}

func TestBuildCardInStock(t *testing.T) {
	p := models.Product{ID: "p1", InStock: true, Price: 80, OriginalPrice: 100}
	card := BuildCard(p, 2, false)
	assert.False(t, card.SoldOut)
	assert.Equal(t, 2, card.CartQuantity)
	assert.True(t, card.HasDiscount)
	assert.Equal(t, 20, card.EffectiveDiscount)
}

func TestBuildCardsMergesState(t *testing.T) {
	products := []models.Product{
		{ID: "a", InStock: true},
		{ID: "b", InStock: true},
		{ID: "c", InStock: true},
	}
	quantities := map[string]int{"a": 1, "c": 4}
	liked := map[string]bool{"b": true}

	cards := BuildCards(products, quantities, liked)
	assert.Len(t, cards, 3)
	assert.Equal(t, 1, cards[0].CartQuantity)
	assert.False(t, cards[0].Liked)
	assert.Equal(t, 0, cards[1].CartQuantity)
	assert.True(t, cards[1].Liked)
	assert.Equal(t, 4, cards[2].CartQuantity)
}
