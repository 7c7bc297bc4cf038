package cart_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/seruni/etalase/internal/cart"
	"github.com/seruni/etalase/internal/catalog"
	"github.com/seruni/etalase/internal/checkout"
	"github.com/seruni/etalase/internal/domain"
	"github.com/seruni/etalase/internal/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	engine       *cart.Engine
	store        *cart.Store
	handoff      *checkout.Handoff
	cartSlot     slot.Slot
	checkoutSlot slot.Slot
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	opener := slot.NewMemoryOpener()
	cartSlot, err := opener.Open("cart")
	require.NoError(t, err)
	checkoutSlot, err := opener.Open("checkout")
	require.NoError(t, err)

	store := cart.NewStore(cartSlot, slog.Default())
	handoff := checkout.NewHandoff(checkoutSlot)

	return &testFixture{
		engine:       cart.NewEngine(store, handoff, nil, slog.Default()),
		store:        store,
		handoff:      handoff,
		cartSlot:     cartSlot,
		checkoutSlot: checkoutSlot,
	}
}

func int64ptr(v int64) *int64 { return &v }

func activeProduct() *domain.Product {
	return &domain.Product{
		ID:        "p1",
		Name:      "Kemeja Flanel",
		Category:  "Kemeja",
		BasePrice: 100000,
		Images:    []string{"flanel-1.jpg", "flanel-2.jpg"},
		Active:    true,
	}
}

func Test_Commit_InactiveProduct(t *testing.T) {
	f := newFixture(t)

	product := activeProduct()
	product.Active = false

	_, _, err := f.engine.Commit(context.Background(), cart.CommitParams{
		Product:  product,
		Quantity: 1,
		Mode:     domain.ModeAddToCart,
	})
	assert.ErrorIs(t, err, domain.ErrProductInactive)
}

func Test_Commit_VariantRequired(t *testing.T) {
	f := newFixture(t)

	set := catalog.NewVariantSet([]domain.Variant{
		{ID: "v1", ProductID: "p1", Size: "M", Color: "Black", Stock: 2, Active: true},
	})

	// Purchasable variants exist but nothing is selected.
	_, _, err := f.engine.Commit(context.Background(), cart.CommitParams{
		Product:  activeProduct(),
		Variants: set,
		Quantity: 1,
		Mode:     domain.ModeAddToCart,
	})
	assert.ErrorIs(t, err, domain.ErrVariantRequired)
}

// Size M + color Navy exists in the source snapshot but is inactive, so the
// working set filters it and the commit must fail as variant-required.
func Test_Commit_FilteredVariantBlocksCommit(t *testing.T) {
	f := newFixture(t)

	set := catalog.NewVariantSet([]domain.Variant{
		{ID: "v1", ProductID: "q1", Size: "M", Color: "Black", Stock: 2, Active: true},
		{ID: "v2", ProductID: "q1", Size: "M", Color: "Navy", Stock: 0, Active: false},
	})

	resolved := set.Resolve("M", "Navy")
	assert.Nil(t, resolved)

	_, _, err := f.engine.Commit(context.Background(), cart.CommitParams{
		Product:  activeProduct(),
		Variants: set,
		Selected: resolved,
		Quantity: 1,
		Mode:     domain.ModeAddToCart,
	})
	assert.ErrorIs(t, err, domain.ErrVariantRequired)
}

func Test_Commit_ProductWithoutVariants(t *testing.T) {
	f := newFixture(t)

	product := activeProduct()
	product.Stock = int64ptr(5)

	updated, disposition, err := f.engine.Commit(context.Background(), cart.CommitParams{
		Product:  product,
		Quantity: 3,
		Mode:     domain.ModeAddToCart,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DispositionCreated, disposition)

	require.Len(t, updated.Lines, 1)
	line := updated.Lines[0]
	assert.Equal(t, "p1", line.ProductID)
	assert.Empty(t, line.VariantID)
	assert.Equal(t, int64(3), line.Quantity)
	assert.Equal(t, int64(100000), line.Price)
	assert.Equal(t, "Kemeja Flanel", line.Name)
	assert.Equal(t, "flanel-1.jpg", line.Image)
	assert.NotEmpty(t, line.ID)
}

func Test_Commit_MergesSameKeyIntoOneLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	variant := &domain.Variant{ID: "v1", ProductID: "p1", Size: "M", Color: "Black", Stock: 2, Active: true}
	set := catalog.NewVariantSet([]domain.Variant{*variant})

	params := cart.CommitParams{
		Product:  activeProduct(),
		Variants: set,
		Selected: variant,
		Quantity: 1,
		Mode:     domain.ModeAddToCart,
	}

	_, disposition, err := f.engine.Commit(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, domain.DispositionCreated, disposition)

	updated, disposition, err := f.engine.Commit(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, domain.DispositionUpdated, disposition)

	// One line, summed quantity - never two lines for the same key.
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, int64(2), updated.Lines[0].Quantity)
}

func Test_Commit_StockBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	variant := &domain.Variant{ID: "v1", ProductID: "p1", Size: "M", Color: "Black", Stock: 4, Active: true}
	set := catalog.NewVariantSet([]domain.Variant{*variant})

	// Adding exactly the stock succeeds.
	updated, _, err := f.engine.Commit(ctx, cart.CommitParams{
		Product:  activeProduct(),
		Variants: set,
		Selected: variant,
		Quantity: 4,
		Mode:     domain.ModeAddToCart,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.Lines[0].Quantity)

	// One more unit exceeds it.
	_, _, err = f.engine.Commit(ctx, cart.CommitParams{
		Product:  activeProduct(),
		Variants: set,
		Selected: variant,
		Quantity: 1,
		Mode:     domain.ModeAddToCart,
	})
	var stockErr *domain.StockExceededError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(4), stockErr.MaxStock)
	assert.Equal(t, domain.EOUTOFSTOCK, domain.ErrorCode(err))
}

func Test_Commit_RejectedMergeLeavesCartUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	variant := &domain.Variant{ID: "v7", ProductID: "q1", Size: "M", Color: "Black", Stock: 2, Active: true}
	set := catalog.NewVariantSet([]domain.Variant{*variant})

	_, _, err := f.engine.Commit(ctx, cart.CommitParams{
		Product:  activeProduct(),
		Variants: set,
		Selected: variant,
		Quantity: 1,
		Mode:     domain.ModeAddToCart,
	})
	require.NoError(t, err)

	before, err := f.cartSlot.Read(ctx)
	require.NoError(t, err)

	// 1 + 2 > 2: rejected, and the persisted cart must be byte-identical.
	_, _, err = f.engine.Commit(ctx, cart.CommitParams{
		Product:  activeProduct(),
		Variants: set,
		Selected: variant,
		Quantity: 2,
		Mode:     domain.ModeAddToCart,
	})
	var stockErr *domain.StockExceededError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(2), stockErr.MaxStock)

	after, err := f.cartSlot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func Test_Commit_PriceCapturedAtAddTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	variant := &domain.Variant{ID: "v1", ProductID: "p1", Size: "M", Color: "Black", Stock: 10, Active: true, PriceOverride: int64ptr(125000)}
	set := catalog.NewVariantSet([]domain.Variant{*variant})

	updated, _, err := f.engine.Commit(ctx, cart.CommitParams{
		Product:  activeProduct(),
		Variants: set,
		Selected: variant,
		Quantity: 1,
		Mode:     domain.ModeAddToCart,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(125000), updated.Lines[0].Price)

	// The catalog price moves between adds; the merged line keeps the price
	// resolved at first add.
	repriced := *variant
	repriced.PriceOverride = int64ptr(150000)
	set = catalog.NewVariantSet([]domain.Variant{repriced})

	updated, _, err = f.engine.Commit(ctx, cart.CommitParams{
		Product:  activeProduct(),
		Variants: set,
		Selected: &repriced,
		Quantity: 1,
		Mode:     domain.ModeAddToCart,
	})
	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, int64(2), updated.Lines[0].Quantity)
	assert.Equal(t, int64(125000), updated.Lines[0].Price)
}

func Test_Commit_NonPositiveQuantityNormalizedToOne(t *testing.T) {
	f := newFixture(t)

	product := activeProduct()
	product.Stock = int64ptr(5)

	updated, _, err := f.engine.Commit(context.Background(), cart.CommitParams{
		Product:  product,
		Quantity: 0,
		Mode:     domain.ModeAddToCart,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Lines[0].Quantity)
}

func Test_Commit_DefaultCeilingWithoutStock(t *testing.T) {
	f := newFixture(t)

	// No variants and no product stock: the 999 ceiling applies.
	_, _, err := f.engine.Commit(context.Background(), cart.CommitParams{
		Product:  activeProduct(),
		Quantity: 1000,
		Mode:     domain.ModeAddToCart,
	})
	var stockErr *domain.StockExceededError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(domain.DefaultQuantityCeiling), stockErr.MaxStock)
}

func Test_Commit_BuyNowBypassesCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	variant := &domain.Variant{ID: "v1", ProductID: "p1", Size: "M", Color: "Black", Stock: 3, Active: true, Image: "black.jpg"}
	set := catalog.NewVariantSet([]domain.Variant{*variant})

	updated, disposition, err := f.engine.Commit(ctx, cart.CommitParams{
		Product:  activeProduct(),
		Variants: set,
		Selected: variant,
		Quantity: 2,
		Mode:     domain.ModeBuyNow,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DispositionCheckout, disposition)
	assert.Nil(t, updated)

	// The cart slot was never written.
	_, err = f.cartSlot.Read(ctx)
	assert.ErrorIs(t, err, slot.ErrEmpty)

	// The checkout slot holds a one-element payload with provenance.
	intent, err := f.handoff.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, checkout.OriginProductDetail, intent.Origin)
	require.Len(t, intent.Lines, 1)
	assert.Equal(t, "v1", intent.Lines[0].VariantID)
	assert.Equal(t, int64(2), intent.Lines[0].Quantity)
	assert.Equal(t, "black.jpg", intent.Lines[0].Image)
}

func Test_Commit_BuyNowRespectsStock(t *testing.T) {
	f := newFixture(t)

	variant := &domain.Variant{ID: "v1", ProductID: "p1", Size: "M", Color: "Black", Stock: 2, Active: true}
	set := catalog.NewVariantSet([]domain.Variant{*variant})

	_, _, err := f.engine.Commit(context.Background(), cart.CommitParams{
		Product:  activeProduct(),
		Variants: set,
		Selected: variant,
		Quantity: 3,
		Mode:     domain.ModeBuyNow,
	})
	var stockErr *domain.StockExceededError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(2), stockErr.MaxStock)

	// Nothing staged on failure.
	_, err = f.handoff.Load(context.Background())
	assert.ErrorIs(t, err, checkout.ErrNothingStaged)
}

func Test_ClampQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		maxStock int64
		expected int64
	}{
		{"below minimum", 0, 10, 1},
		{"negative", -5, 10, 1},
		{"within range", 4, 10, 4},
		{"at ceiling", 10, 10, 10},
		{"above ceiling", 11, 10, 10},
		{"zero ceiling still yields one", 5, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cart.ClampQuantity(tc.quantity, tc.maxStock))
		})
	}
}

func Test_ParseQuantity(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		maxStock int64
		expected int64
	}{
		{"plain integer", "3", 10, 3},
		{"whitespace absorbed", " 7 ", 10, 7},
		{"non-numeric defaults to one", "abc", 10, 1},
		{"empty defaults to one", "", 10, 1},
		{"negative normalized", "-2", 10, 1},
		{"clamped to stock", "25", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cart.ParseQuantity(tc.raw, tc.maxStock))
		})
	}
}
