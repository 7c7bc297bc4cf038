// Package cart implements the variant cart engine: resolving a purchase
// intent against a catalog snapshot and merging it into the persisted cart,
// or staging it straight for checkout.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/seruni/etalase/internal/domain"
	"github.com/seruni/etalase/internal/slot"
)

// Store implements domain.CartStore over a persisted slot. It is the sole
// owner of the slot: every mutation is one read-modify-write of the whole
// cart. Callers must serialize calls that mutate the same cart.
type Store struct {
	slot   slot.Slot
	logger *slog.Logger
}

// Compile-time check that Store implements domain.CartStore.
var _ domain.CartStore = (*Store)(nil)

// NewStore creates a cart store over the given slot.
func NewStore(s slot.Slot, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{slot: s, logger: logger}
}

// Get reads the current cart. A never-written slot yields an empty cart.
func (s *Store) Get(ctx context.Context) (*domain.Cart, error) {
	data, err := s.slot.Read(ctx)
	if err != nil {
		if errors.Is(err, slot.ErrEmpty) {
			return &domain.Cart{}, nil
		}
		return nil, domain.Internal(err, "cart.get", "failed to read cart")
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, domain.Internal(err, "cart.get", "failed to decode cart")
	}
	return &cart, nil
}

// Merge folds a line into the cart under its (productId, variantId) key.
// An existing line gets its quantity increased in place; its price is NOT
// recomputed. A new line is appended as given. Either way the merged
// quantity is checked against maxStock first, and the whole cart is
// rewritten only on success.
func (s *Store) Merge(ctx context.Context, line domain.CartLine, maxStock int64) (*domain.Cart, domain.Disposition, error) {
	if line.Quantity <= 0 {
		return nil, "", domain.ErrInvalidQuantity
	}

	cart, err := s.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	disposition := domain.DispositionCreated
	if existing := cart.Find(line.Key()); existing != nil {
		newQuantity := existing.Quantity + line.Quantity
		if newQuantity > maxStock {
			return nil, "", &domain.StockExceededError{MaxStock: maxStock}
		}
		existing.Quantity = newQuantity
		disposition = domain.DispositionUpdated
	} else {
		if line.Quantity > maxStock {
			return nil, "", &domain.StockExceededError{MaxStock: maxStock}
		}
		cart.Lines = append(cart.Lines, line)
	}

	if err := s.write(ctx, cart); err != nil {
		return nil, "", err
	}

	s.logger.Debug("cart line merged",
		slog.String("key", line.Key()),
		slog.String("disposition", string(disposition)),
		slog.Int64("quantity", line.Quantity))

	return cart, disposition, nil
}

// Clear empties the persisted cart.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.slot.Clear(ctx); err != nil {
		return domain.Internal(err, "cart.clear", "failed to clear cart")
	}
	return nil
}

func (s *Store) write(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return domain.Internal(err, "cart.write", "failed to encode cart")
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return domain.Internal(err, "cart.write", "failed to persist cart")
	}
	return nil
}
