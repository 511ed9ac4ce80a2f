// Package cart implements the session cart and liked-products set.
//
// A cart is keyed by product id, one entry per product. Entry prices are
// captured at add time and are not re-validated against the live catalog;
// totals always come from the captured price.
package cart

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/example/bakeshop/pkg/models"
)

var ErrEntryNotFound = errors.New("cart entry not found")

// Entry pairs a product snapshot with a quantity. AddedAt preserves
// insertion order for display; it never affects totals.
type Entry struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	AddedAt  time.Time      `json:"added_at"`
}

// Store is the persistence boundary for one session's cart and liked set.
type Store interface {
	Get(ctx context.Context, session, productID string) (*Entry, error)
	Put(ctx context.Context, session string, entry Entry) error
	Remove(ctx context.Context, session, productID string) error
	All(ctx context.Context, session string) ([]Entry, error)
	Clear(ctx context.Context, session string) error

	ToggleLike(ctx context.Context, session, productID string) (bool, error)
	IsLiked(ctx context.Context, session, productID string) (bool, error)
	Likes(ctx context.Context, session string) ([]string, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add inserts the product with the given quantity, or bumps the quantity
// of an existing entry. The captured product snapshot and insertion time
// of an existing entry are kept.
func (s *Service) Add(ctx context.Context, session string, product models.Product, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	existing, err := s.store.Get(ctx, session, product.ID)
	if err != nil && !errors.Is(err, ErrEntryNotFound) {
		return err
	}
	if existing != nil {
		existing.Quantity += quantity
		return s.store.Put(ctx, session, *existing)
	}
	return s.store.Put(ctx, session, Entry{
		Product:  product,
		Quantity: quantity,
		AddedAt:  time.Now().UTC(),
	})
}

// UpdateQuantity sets the quantity of an existing entry. A quantity of
// zero or below removes the entry.
func (s *Service) UpdateQuantity(ctx context.Context, session, productID string, quantity int) error {
	if quantity <= 0 {
		return s.store.Remove(ctx, session, productID)
	}
	entry, err := s.store.Get(ctx, session, productID)
	if err != nil {
		return err
	}
	entry.Quantity = quantity
	return s.store.Put(ctx, session, *entry)
}

func (s *Service) Remove(ctx context.Context, session, productID string) error {
	return s.store.Remove(ctx, session, productID)
}

func (s *Service) Clear(ctx context.Context, session string) error {
	return s.store.Clear(ctx, session)
}

// Items returns the cart in insertion order.
func (s *Service) Items(ctx context.Context, session string) ([]Entry, error) {
	entries, err := s.store.All(ctx, session)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AddedAt.Before(entries[j].AddedAt)
	})
	return entries, nil
}

func (s *Service) IsInCart(ctx context.Context, session, productID string) (bool, error) {
	_, err := s.store.Get(ctx, session, productID)
	if errors.Is(err, ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Quantity returns the entry quantity, or 0 when the product is absent.
func (s *Service) Quantity(ctx context.Context, session, productID string) (int, error) {
	entry, err := s.store.Get(ctx, session, productID)
	if errors.Is(err, ErrEntryNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return entry.Quantity, nil
}

// Subtotal sums captured prices times quantities. Live catalog prices are
// deliberately not consulted.
func (s *Service) Subtotal(ctx context.Context, session string) (float64, error) {
	entries, err := s.store.All(ctx, session)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, e := range entries {
		total += e.Product.Price * float64(e.Quantity)
	}
	return total, nil
}

func (s *Service) ToggleLike(ctx context.Context, session, productID string) (bool, error) {
	return s.store.ToggleLike(ctx, session, productID)
}

func (s *Service) IsLiked(ctx context.Context, session, productID string) (bool, error) {
	return s.store.IsLiked(ctx, session, productID)
}

func (s *Service) Likes(ctx context.Context, session string) ([]string, error) {
	return s.store.Likes(ctx, session)
}
