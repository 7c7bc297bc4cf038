// Package checkout owns the buy-now handoff slot: a one-element payload the
// checkout view picks up, bypassing the persisted cart entirely.
package checkout

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/seruni/etalase/internal/domain"
	"github.com/seruni/etalase/internal/slot"
)

// OriginProductDetail tags payloads staged from the product detail view.
const OriginProductDetail = "product_detail"

// ErrNothingStaged is returned by Load when no payload is waiting.
var ErrNothingStaged = &domain.Error{Code: domain.ENOTFOUND, Message: "Nothing staged for checkout"}

// Handoff is the sole owner of the checkout slot.
type Handoff struct {
	slot slot.Slot
}

// NewHandoff creates a checkout handoff over the given slot.
func NewHandoff(s slot.Slot) *Handoff {
	return &Handoff{slot: s}
}

// Stage writes a single-line checkout payload, replacing any previous one.
func (h *Handoff) Stage(ctx context.Context, line domain.CartLine, origin string) error {
	intent := domain.CheckoutIntent{
		Lines:  []domain.CartLine{line},
		Origin: origin,
	}

	data, err := json.Marshal(intent)
	if err != nil {
		return domain.Internal(err, "checkout.stage", "failed to encode checkout payload")
	}
	if err := h.slot.Write(ctx, data); err != nil {
		return domain.Internal(err, "checkout.stage", "failed to persist checkout payload")
	}
	return nil
}

// Load reads the staged payload, if any.
func (h *Handoff) Load(ctx context.Context) (*domain.CheckoutIntent, error) {
	data, err := h.slot.Read(ctx)
	if err != nil {
		if errors.Is(err, slot.ErrEmpty) {
			return nil, ErrNothingStaged
		}
		return nil, domain.Internal(err, "checkout.load", "failed to read checkout payload")
	}

	var intent domain.CheckoutIntent
	if err := json.Unmarshal(data, &intent); err != nil {
		return nil, domain.Internal(err, "checkout.load", "failed to decode checkout payload")
	}
	return &intent, nil
}

// Clear discards the staged payload.
func (h *Handoff) Clear(ctx context.Context) error {
	if err := h.slot.Clear(ctx); err != nil {
		return domain.Internal(err, "checkout.clear", "failed to clear checkout payload")
	}
	return nil
}
