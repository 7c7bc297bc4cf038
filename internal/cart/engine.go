package cart

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seruni/etalase/internal/catalog"
	"github.com/seruni/etalase/internal/checkout"
	"github.com/seruni/etalase/internal/domain"
	"github.com/seruni/etalase/internal/telemetry"
)

// Engine resolves a purchase intent against a catalog snapshot and commits
// it: merged into the persisted cart, or staged straight for checkout.
// Every commit is one pure computation plus one storage read and at most one
// storage write; callers serialize commits against the same cart.
type Engine struct {
	store   domain.CartStore
	handoff *checkout.Handoff
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewEngine creates a cart engine. metrics may be nil.
func NewEngine(store domain.CartStore, handoff *checkout.Handoff, metrics *telemetry.Metrics, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:   store,
		handoff: handoff,
		metrics: metrics,
		logger:  logger,
	}
}

// CommitParams carries one purchase intent.
type CommitParams struct {
	// Product is the viewed product. Required.
	Product *domain.Product

	// Variants is the product's working set. May be nil or empty for
	// products purchasable without variants.
	Variants *catalog.VariantSet

	// Selected is the resolved variant, nil when the product has none or the
	// selection is incomplete.
	Selected *domain.Variant

	// Quantity is the requested quantity. Non-positive values are normalized
	// to 1 rather than rejected.
	Quantity int64

	Mode domain.CommitMode
}

// Commit validates the intent and routes it by mode. On success the returned
// cart reflects the merge (nil for buy-now, which bypasses the cart slot
// entirely) and the disposition tells the caller which confirmation to show.
func (e *Engine) Commit(ctx context.Context, p CommitParams) (*domain.Cart, domain.Disposition, error) {
	cart, disposition, err := e.commit(ctx, p)
	if err != nil {
		if e.metrics != nil {
			e.metrics.CommitRejected.WithLabelValues(domain.ErrorCode(err)).Inc()
		}
		return nil, "", err
	}
	return cart, disposition, nil
}

func (e *Engine) commit(ctx context.Context, p CommitParams) (*domain.Cart, domain.Disposition, error) {
	if p.Product == nil {
		return nil, "", domain.Invalid("cart.commit", "product is required")
	}
	if !p.Product.Active {
		return nil, "", domain.ErrProductInactive
	}

	// A product with purchasable variants cannot be committed without a
	// resolved variant. This also covers the "both axes chosen, no match"
	// display state.
	if p.Variants != nil && p.Variants.Len() > 0 && p.Selected == nil {
		return nil, "", domain.ErrVariantRequired
	}

	maxStock := e.maxStock(p)
	quantity := p.Quantity
	if quantity < 1 {
		quantity = 1
	}

	line := e.buildLine(p, quantity)

	switch p.Mode {
	case domain.ModeBuyNow:
		if quantity > maxStock {
			return nil, "", &domain.StockExceededError{MaxStock: maxStock}
		}
		if err := e.handoff.Stage(ctx, line, checkout.OriginProductDetail); err != nil {
			return nil, "", err
		}
		if e.metrics != nil {
			e.metrics.CheckoutStaged.Inc()
			e.metrics.LineValue.Observe(float64(line.Subtotal()))
		}
		e.logger.Info("checkout staged",
			slog.String("product_id", p.Product.ID),
			slog.String("variant_id", line.VariantID),
			slog.Int64("quantity", quantity))
		return nil, domain.DispositionCheckout, nil

	case domain.ModeAddToCart:
		cart, disposition, err := e.store.Merge(ctx, line, maxStock)
		if err != nil {
			return nil, "", err
		}
		if e.metrics != nil {
			switch disposition {
			case domain.DispositionCreated:
				e.metrics.LinesCreated.Inc()
			case domain.DispositionUpdated:
				e.metrics.QuantityMerges.Inc()
			}
			e.metrics.LineValue.Observe(float64(line.Subtotal()))
		}
		return cart, disposition, nil

	default:
		return nil, "", domain.Invalid("cart.commit", "unknown commit mode")
	}
}

// maxStock resolves the quantity ceiling for this intent: the matched
// variant's stock, else the product's own stock, else the default ceiling.
func (e *Engine) maxStock(p CommitParams) int64 {
	if p.Selected != nil {
		return p.Selected.Stock
	}
	if p.Product.Stock != nil {
		return *p.Product.Stock
	}
	return domain.DefaultQuantityCeiling
}

// buildLine captures the denormalized display fields and the effective price
// at add-time. The price is final: later catalog changes never touch it.
func (e *Engine) buildLine(p CommitParams, quantity int64) domain.CartLine {
	line := domain.CartLine{
		ID:          uuid.NewString(),
		ProductID:   p.Product.ID,
		Name:        p.Product.Name,
		Category:    p.Product.Category,
		Quantity:    quantity,
		Price:       p.Product.BasePrice,
		WeightGrams: p.Product.WeightGrams,
		Dimensions:  p.Product.Dimensions,
		AddedAt:     time.Now().UTC(),
	}

	if len(p.Product.Images) > 0 {
		line.Image = p.Product.Images[0]
	}

	if p.Selected != nil {
		line.VariantID = p.Selected.ID
		line.Size = p.Selected.Size
		line.Color = p.Selected.Color
		line.Price = catalog.EffectivePrice(p.Product.BasePrice, p.Selected)
		if p.Selected.Image != "" {
			line.Image = p.Selected.Image
		}
	}

	return line
}

// ClampQuantity clamps a requested quantity to [1, maxStock] on every
// stepper change.
func ClampQuantity(quantity, maxStock int64) int64 {
	if maxStock < 1 {
		maxStock = 1
	}
	if quantity < 1 {
		return 1
	}
	if quantity > maxStock {
		return maxStock
	}
	return quantity
}

// ParseQuantity parses a typed quantity value. Non-numeric input defaults to
// 1; the result is clamped to [1, maxStock].
func ParseQuantity(raw string, maxStock int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		n = 1
	}
	return ClampQuantity(n, maxStock)
}
