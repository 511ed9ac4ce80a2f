package storefront

import (
	"context"
	"sync"

	"github.com/example/bakeshop/pkg/models"
	"golang.org/x/sync/singleflight"
)

// FetchFunc loads a product collection for a section.
type FetchFunc func(ctx context.Context) ([]models.Product, error)

// Section is one product grid on a page: a fetched snapshot, its loading
// and error state, and a carousel over the result. Each section owns its
// snapshot; two sections may disagree about a product until each
// refetches.
//
// A response that completes after Dismount is discarded: it neither
// errors nor mutates state that a newer mount now owns.
type Section struct {
	mu       sync.Mutex
	fetch    FetchFunc
	limit    int
	carousel *Carousel
	loading  bool
	errMsg   string
	gen      uint64
	sfg      singleflight.Group
}

// NewSection builds a section fetching via fetch, keeping at most limit
// products (0 = unbounded), windowed perView at a time.
func NewSection(fetch FetchFunc, limit, perView int) *Section {
	return &Section{
		fetch:    fetch,
		limit:    limit,
		carousel: NewCarousel(perView),
	}
}

// Refresh loads the section. Concurrent refreshes of the same section are
// collapsed into one upstream call. Every completion path clears the
// loading flag; a completion that lost a Dismount race is dropped whole.
func (s *Section) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	gen := s.gen
	s.mu.Unlock()

	result, err, _ := s.sfg.Do("fetch", func() (interface{}, error) {
		return s.fetch(ctx)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// Dismounted while in flight; discard the response.
		return
	}
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		s.carousel.SetItems(nil)
		return
	}

	products := result.([]models.Product)
	if s.limit > 0 && len(products) > s.limit {
		products = products[:s.limit]
	}
	s.carousel.SetItems(products)
}

// Dismount invalidates in-flight responses. Call when the view leaves the
// screen.
func (s *Section) Dismount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.loading = false
}

func (s *Section) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Section) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Visible returns the current carousel window.
func (s *Section) Visible() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carousel.Visible()
}

func (s *Section) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carousel.Next()
}

func (s *Section) HasControls() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carousel.HasControls()
}

// Products returns the full fetched snapshot, not just the window.
func (s *Section) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carousel.items
}
