package cart

import (
	"context"
	"testing"

	"github.com/example/bakeshop/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSession = "session-1"

func newTestService() *Service {
	return NewService(NewMemoryStore())
}

func product(id string, price float64) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: price, InStock: true}
}

func TestAddAndQuantity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.Add(ctx, testSession, product("p1", 10), 1))

	qty, err := svc.Quantity(ctx, testSession, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, qty)

	// Adding again bumps the existing entry.
	require.NoError(t, svc.Add(ctx, testSession, product("p1", 10), 2))
	qty, err = svc.Quantity(ctx, testSession, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, qty)
}

func TestDecrementToZeroRemovesEntry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.Add(ctx, testSession, product("p1", 10), 1))
	require.NoError(t, svc.UpdateQuantity(ctx, testSession, "p1", 0))

	inCart, err := svc.IsInCart(ctx, testSession, "p1")
	require.NoError(t, err)
	assert.False(t, inCart)

	qty, err := svc.Quantity(ctx, testSession, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, qty)
}

func TestNegativeQuantityRemovesEntry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.Add(ctx, testSession, product("p1", 10), 2))
	require.NoError(t, svc.UpdateQuantity(ctx, testSession, "p1", -1))

	inCart, err := svc.IsInCart(ctx, testSession, "p1")
	require.NoError(t, err)
	assert.False(t, inCart)
}

// Totals come from the price captured at add time, not the live catalog.
func TestSubtotalUsesCapturedPrice(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	p := product("p1", 100)
	require.NoError(t, svc.Add(ctx, testSession, p, 2))

	// A later catalog edit does not touch the cart's copy.
	p.Price = 250

	subtotal, err := svc.Subtotal(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, 200.0, subtotal)
}

func TestItemsInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.Add(ctx, testSession, product("p1", 1), 1))
	require.NoError(t, svc.Add(ctx, testSession, product("p2", 2), 1))
	require.NoError(t, svc.Add(ctx, testSession, product("p3", 3), 1))

	items, err := svc.Items(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, "p2", items[1].Product.ID)
	assert.Equal(t, "p3", items[2].Product.ID)
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.Add(ctx, "a", product("p1", 1), 1))

	inCart, err := svc.IsInCart(ctx, "b", "p1")
	require.NoError(t, err)
	assert.False(t, inCart)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.Add(ctx, testSession, product("p1", 1), 1))
	require.NoError(t, svc.Clear(ctx, testSession))

	items, err := svc.Items(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	liked, err := svc.ToggleLike(ctx, testSession, "p1")
	require.NoError(t, err)
	assert.True(t, liked)

	isLiked, err := svc.IsLiked(ctx, testSession, "p1")
	require.NoError(t, err)
	assert.True(t, isLiked)

	liked, err = svc.ToggleLike(ctx, testSession, "p1")
	require.NoError(t, err)
	assert.False(t, liked)

	likes, err := svc.Likes(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, likes)
}
