// Package postgres implements the catalog collaborators over PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seruni/etalase/internal/domain"
	"github.com/seruni/etalase/internal/source"
)

// VariantSource implements domain.VariantSource over a pgx pool. Rows are
// scanned into source records and funneled through the shared decoder, so
// the same validation guards every catalog path.
type VariantSource struct {
	pool    *pgxpool.Pool
	decoder *source.Decoder
}

// Compile-time check that VariantSource implements domain.VariantSource.
var _ domain.VariantSource = (*VariantSource)(nil)

// NewVariantSource creates a PostgreSQL-backed variant source.
func NewVariantSource(pool *pgxpool.Pool) *VariantSource {
	return &VariantSource{
		pool:    pool,
		decoder: source.NewDecoder(),
	}
}

// Product retrieves a product by ID.
func (s *VariantSource) Product(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
		SELECT id, nama, kategori, harga_dasar, gambar, stok, berat, dimensi, aktif
		FROM products
		WHERE id = $1`

	var (
		rec      source.ProductRecord
		category pgtype.Text
		images   pgtype.Text
		stock    pgtype.Int8
		weight   pgtype.Int8
		dims     pgtype.Text
	)

	row := s.pool.QueryRow(ctx, q, id)
	if err := row.Scan(&rec.ID, &rec.Name, &category, &rec.BasePrice, &images, &stock, &weight, &dims, &rec.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	rec.Category = category.String
	rec.Images = images.String
	if stock.Valid {
		rec.Stock = &stock.Int64
	}
	if weight.Valid {
		rec.WeightGrams = &weight.Int64
	}
	if dims.Valid {
		rec.Dimensions = &dims.String
	}

	return s.decoder.Product(rec)
}

// VariantsForProduct retrieves all variants of a product in catalog order,
// active or not. The engine filters the working set itself.
func (s *VariantSource) VariantsForProduct(ctx context.Context, productID string) ([]domain.Variant, error) {
	const q = `
		SELECT id, product_id, ukuran, warna, stok, aktif, harga_override, gambar
		FROM product_variants
		WHERE product_id = $1
		ORDER BY position, id`

	rows, err := s.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	var variants []domain.Variant
	for rows.Next() {
		var (
			rec      source.VariantRecord
			override pgtype.Int8
			image    pgtype.Text
		)
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Size, &rec.Color, &rec.Stock, &rec.Active, &override, &image); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		if override.Valid {
			rec.PriceOverride = &override.Int64
		}
		rec.Image = image.String

		v, err := s.decoder.Variant(rec)
		if err != nil {
			return nil, err
		}
		variants = append(variants, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read variants: %w", err)
	}

	return variants, nil
}
