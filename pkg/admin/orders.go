// Package admin implements the two back-office consoles: order status
// management and product CRUD.
package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/example/bakeshop/pkg/models"
	"github.com/example/bakeshop/pkg/repository"
)

// StatusFilterAll disables status filtering in the order console.
const StatusFilterAll = "all"

// OrdersRepo is the slice of the order repository the console needs.
type OrdersRepo interface {
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// OrderConsole lists every order, filters client-side, and performs
// status transitions. Status changes are confirmed-only: the local list
// reflects a new status only after the backing write succeeded.
type OrderConsole struct {
	mu       sync.Mutex
	repo     OrdersRepo
	orders   []models.Order
	loading  bool
	errMsg   string
	updating map[string]bool
}

func NewOrderConsole(repo OrdersRepo) *OrderConsole {
	return &OrderConsole{
		repo:     repo,
		updating: make(map[string]bool),
	}
}

// Refresh fetches the whole orders collection, newest first. A failed
// fetch blocks the display entirely: no partial or stale list survives,
// and the loading flag always clears.
func (c *OrderConsole) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	orders, err := c.repo.ListAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.orders = nil
		c.errMsg = fetchErrorMessage(err)
		return
	}

	// The repository sorts, but timestamps can arrive in mixed shapes;
	// sorting the normalized instants keeps the order deterministic.
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt.Time)
	})
	c.orders = orders
}

func fetchErrorMessage(err error) string {
	switch repository.Classify(err) {
	case repository.KindPermissionDenied:
		return "Permission denied. Please make sure you are logged in as admin."
	case repository.KindUnavailable:
		return "Service temporarily unavailable. Please try again."
	case repository.KindUnauthenticated:
		return "You need to be logged in to view orders."
	default:
		return fmt.Sprintf("Failed to load orders: %s", err.Error())
	}
}

// Filter applies the free-text query and status filter to the fetched
// list. The query matches case-insensitively against order id, customer
// name, email, and phone; an empty query matches everything. Status
// matches exactly, or "all".
func (c *OrderConsole) Filter(query, status string) []models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Order
	for _, order := range c.orders {
		if q != "" && !orderMatches(order, q) {
			continue
		}
		if status != "" && status != StatusFilterAll && string(order.Status) != status {
			continue
		}
		out = append(out, order)
	}
	return out
}

func orderMatches(order models.Order, q string) bool {
	return strings.Contains(strings.ToLower(order.ID), q) ||
		strings.Contains(strings.ToLower(order.Customer.Name), q) ||
		strings.Contains(strings.ToLower(order.Customer.Email), q) ||
		strings.Contains(strings.ToLower(order.Customer.PhoneNumber), q)
}

// SetStatus transitions one order to any other enumerated status. While
// the write is in flight the order is marked updating; other orders stay
// interactive. On failure the displayed status keeps its last-confirmed
// value.
func (c *OrderConsole) SetStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid order status %q", status)
	}

	c.mu.Lock()
	if c.updating[id] {
		c.mu.Unlock()
		return fmt.Errorf("order %s update already in flight", id)
	}
	c.updating[id] = true
	c.mu.Unlock()

	err := c.repo.UpdateStatus(ctx, id, status)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.updating, id)

	if err != nil {
		c.errMsg = "Failed to update order status. Please try again."
		return err
	}

	for i := range c.orders {
		if c.orders[i].ID == id {
			c.orders[i].Status = status
			c.orders[i].UpdatedAt = models.Now()
			break
		}
	}
	return nil
}

// Updating reports whether a status write for this order is in flight.
func (c *OrderConsole) Updating(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updating[id]
}

func (c *OrderConsole) Orders() []models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orders
}

func (c *OrderConsole) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *OrderConsole) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// DismissError clears the inline error banner.
func (c *OrderConsole) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
}
