package stock

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"go-storefront-api/internal/model"
)

func ip(i int) *int { return &i }

func testProduct(stock int, variants ...model.Variant) *model.Product {
	p := &model.Product{Stock: stock, Variants: variants}
	p.ID = uuid.New()
	return p
}

func TestAvailable(t *testing.T) {
	p := testProduct(10, model.Variant{Color: "Red", Stock: ip(3)}, model.Variant{Color: "Blue"})

	if got := Available(p, nil); got != 10 {
		t.Fatalf("product-level available = %d, want 10", got)
	}
	if got := Available(p, p.VariantByColor("Red")); got != 3 {
		t.Fatalf("variant available = %d, want 3", got)
	}
	// Variant without its own stock falls back to the product pool.
	if got := Available(p, p.VariantByColor("Blue")); got != 10 {
		t.Fatalf("fallback available = %d, want 10", got)
	}
}

func TestReserve(t *testing.T) {
	t.Run("succeeds for every quantity within stock", func(t *testing.T) {
		p := testProduct(5)
		for qty := 1; qty <= 5; qty++ {
			if _, err := Reserve(p, nil, qty); err != nil {
				t.Fatalf("qty %d within stock 5 must reserve, got %v", qty, err)
			}
		}
	})

	t.Run("fails beyond stock", func(t *testing.T) {
		p := testProduct(5)
		if _, err := Reserve(p, nil, 6); !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		p := testProduct(5)
		for _, qty := range []int{0, -2} {
			if _, err := Reserve(p, nil, qty); !errors.Is(err, ErrInvalidQuantity) {
				t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
			}
		}
	})

	t.Run("variant stock is checked at variant granularity", func(t *testing.T) {
		p := testProduct(10, model.Variant{Color: "Red", Stock: ip(2)})
		v := p.VariantByColor("Red")
		if _, err := Reserve(p, v, 3); !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock on variant pool, got %v", err)
		}
		r, err := Reserve(p, v, 2)
		if err != nil {
			t.Fatal(err)
		}
		if r.VariantColor != "Red" {
			t.Fatalf("reservation must target variant pool, got %q", r.VariantColor)
		}
	})
}

func TestApplyAndRelease(t *testing.T) {
	p := testProduct(10, model.Variant{Color: "Red", Stock: ip(4)})
	v := p.VariantByColor("Red")

	r, err := Reserve(p, v, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Apply(p); err != nil {
		t.Fatal(err)
	}
	if got := *p.VariantByColor("Red").Stock; got != 1 {
		t.Fatalf("variant stock after apply = %d, want 1", got)
	}
	if p.Stock != 10 {
		t.Fatalf("product stock must be untouched, got %d", p.Stock)
	}

	r.Release(p)
	if got := *p.VariantByColor("Red").Stock; got != 4 {
		t.Fatalf("variant stock after release = %d, want 4", got)
	}
}

func TestApplyRechecksUnderLock(t *testing.T) {
	p := testProduct(3)
	r, err := Reserve(p, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	// Another checkout drained the pool between validate and apply.
	p.Stock = 1
	if err := r.Apply(p); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock on re-check, got %v", err)
	}
}

// Two concurrent reserve(2) calls against stock 3: exactly one may
// apply. The mutex stands in for the row lock the checkout service
// holds around validate-and-apply.
func TestConcurrentReserveOnlyOneWins(t *testing.T) {
	p := testProduct(3)

	var mu sync.Mutex
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			r, err := Reserve(p, nil, 2)
			if err == nil {
				err = r.Apply(p)
			}
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, insufficient int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || insufficient != 1 {
		t.Fatalf("want exactly one success and one ErrInsufficientStock, got %d/%d", ok, insufficient)
	}
	if p.Stock != 1 {
		t.Fatalf("stock after single apply = %d, want 1", p.Stock)
	}
}
