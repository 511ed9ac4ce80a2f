package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/bakeshop/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestSectionRefresh(t *testing.T) {
	s := NewSection(func(ctx context.Context) ([]models.Product, error) {
		return makeProducts(5), nil
	}, 0, 3)

	s.Refresh(context.Background())

	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())
	assert.Len(t, s.Products(), 5)
	assert.Len(t, s.Visible(), 3)
	assert.True(t, s.HasControls())
}

func TestSectionRefreshAppliesLimit(t *testing.T) {
	s := NewSection(func(ctx context.Context) ([]models.Product, error) {
		return makeProducts(12), nil
	}, 8, 3)

	s.Refresh(context.Background())
	assert.Len(t, s.Products(), 8)
}

func TestSectionRefreshErrorClearsItems(t *testing.T) {
	var fail bool
	s := NewSection(func(ctx context.Context) ([]models.Product, error) {
		if fail {
			return nil, errors.New("backend down")
		}
		return makeProducts(4), nil
	}, 0, 3)

	s.Refresh(context.Background())
	assert.Len(t, s.Products(), 4)

	fail = true
	s.Refresh(context.Background())

	// A failed refresh always clears the loading flag and empties the
	// section rather than showing a stale snapshot.
	assert.False(t, s.Loading())
	assert.Equal(t, "backend down", s.Err())
	assert.Empty(t, s.Products())
}

// A response arriving after Dismount is dropped whole: no items, no
// error, nothing for a newer mount to inherit.
func TestSectionDismountDiscardsInFlightResponse(t *testing.T) {
	release := make(chan struct{})
	s := NewSection(func(ctx context.Context) ([]models.Product, error) {
		<-release
		return makeProducts(5), nil
	}, 0, 3)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Refresh(context.Background())
	}()

	// Wait until the refresh is in flight, then dismount.
	assert.Eventually(t, s.Loading, time.Second, time.Millisecond)
	s.Dismount()
	close(release)
	wg.Wait()

	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())
	assert.Empty(t, s.Products())
}

func TestSectionDismountDiscardsInFlightError(t *testing.T) {
	release := make(chan struct{})
	s := NewSection(func(ctx context.Context) ([]models.Product, error) {
		<-release
		return nil, errors.New("too late to matter")
	}, 0, 3)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Refresh(context.Background())
	}()

	assert.Eventually(t, s.Loading, time.Second, time.Millisecond)
	s.Dismount()
	close(release)
	wg.Wait()

	assert.Empty(t, s.Err())
}

// Concurrent refreshes collapse into a single upstream fetch.
func TestSectionConcurrentRefreshSingleFetch(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})
	s := NewSection(func(ctx context.Context) ([]models.Product, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return makeProducts(3), nil
	}, 0, 3)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Refresh(context.Background())
		}()
	}

	assert.Eventually(t, s.Loading, time.Second, time.Millisecond)
	// Let the remaining goroutines reach the collapsed fetch.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
	assert.Len(t, s.Products(), 3)
}
