// Package storefront holds the customer-facing view logic: the windowed
// product carousels, the per-card merge of cart and liked state, and the
// view snapshots the home page renders from.
package storefront

import "github.com/example/bakeshop/pkg/models"

// Products shown per carousel step: 3 on wide viewports, 4 on narrow.
const (
	PerViewWide   = 3
	PerViewNarrow = 4
)

func PerView(narrow bool) int {
	if narrow {
		return PerViewNarrow
	}
	return PerViewWide
}

// Window returns the indices of the visible slice of an n-item collection
// for window size w starting at offset start. When n <= w the whole
// collection is visible and start is ignored. Otherwise the window is
// [start, start+w) with circular wraparound.
func Window(n, w, start int) []int {
	if n == 0 {
		return nil
	}
	if n <= w {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	indices := make([]int, w)
	for i := 0; i < w; i++ {
		indices[i] = (start + i) % n
	}
	return indices
}

// Carousel is a bounded sliding window over a product collection. Its
// visible slice is fully determined by (items, index, perView).
type Carousel struct {
	items   []models.Product
	index   int
	perView int
}

func NewCarousel(perView int) *Carousel {
	if perView <= 0 {
		perView = PerViewWide
	}
	return &Carousel{perView: perView}
}

// SetItems replaces the collection. A start offset invalidated by the new
// length resets to zero.
func (c *Carousel) SetItems(items []models.Product) {
	c.items = items
	if len(items) == 0 || c.index >= len(items) {
		c.index = 0
	}
	if len(items) <= c.perView {
		c.index = 0
	}
}

func (c *Carousel) Visible() []models.Product {
	indices := Window(len(c.items), c.perView, c.index)
	visible := make([]models.Product, len(indices))
	for i, idx := range indices {
		visible[i] = c.items[idx]
	}
	return visible
}

// Next advances the window by one full page, modulo the collection length.
func (c *Carousel) Next() {
	if len(c.items) <= c.perView {
		return
	}
	c.index = (c.index + c.perView) % len(c.items)
}

// HasControls reports whether pagination controls are shown: only when
// the collection is larger than the window.
func (c *Carousel) HasControls() bool {
	return len(c.items) > c.perView
}

func (c *Carousel) Index() int {
	return c.index
}

func (c *Carousel) Len() int {
	return len(c.items)
}
