package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/seruni/etalase/internal"
	"github.com/seruni/etalase/internal/cart"
	"github.com/seruni/etalase/internal/catalog"
	"github.com/seruni/etalase/internal/checkout"
	"github.com/seruni/etalase/internal/domain"
	"github.com/seruni/etalase/internal/postgres"
	"github.com/seruni/etalase/internal/slot"
	"github.com/seruni/etalase/internal/telemetry"
)

const usage = `Usage: etalase <command> [flags]

Commands:
  migrate   Run catalog schema migrations
  add       Add a product to the persisted cart
  buy       Stage a product for checkout, bypassing the cart
  show      Print the persisted cart
  clear     Empty the persisted cart
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stderr, cfg.Env, cfg.LogLevel)

	ctx := context.Background()

	switch args[0] {
	case "migrate":
		return runMigrate(cfg, logger)
	case "add":
		return runCommit(ctx, cfg, logger, args[1:], domain.ModeAddToCart)
	case "buy":
		return runCommit(ctx, cfg, logger, args[1:], domain.ModeBuyNow)
	case "show":
		return runShow(ctx, cfg, logger)
	case "clear":
		return runClear(ctx, cfg, logger)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func runMigrate(cfg *internal.Config, logger *slog.Logger) error {
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Running catalog migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Catalog migrations completed successfully")
	return nil
}

// app bundles the wired cart collaborators for one invocation.
type app struct {
	store   *cart.Store
	handoff *checkout.Handoff
	engine  *cart.Engine
}

func newApp(cfg *internal.Config, logger *slog.Logger) (*app, error) {
	opener, err := slot.NewOpener(cfg.Slot)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize slot backend: %w", err)
	}

	cartSlot, err := opener.Open(cfg.Cart.SlotName)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart slot: %w", err)
	}
	checkoutSlot, err := opener.Open(cfg.Cart.CheckoutSlotName)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkout slot: %w", err)
	}

	store := cart.NewStore(cartSlot, logger)
	handoff := checkout.NewHandoff(checkoutSlot)
	metrics := telemetry.NewMetrics(cfg.MetricsNamespace)

	return &app{
		store:   store,
		handoff: handoff,
		engine:  cart.NewEngine(store, handoff, metrics, logger),
	}, nil
}

func runCommit(ctx context.Context, cfg *internal.Config, logger *slog.Logger, args []string, mode domain.CommitMode) error {
	fs := flag.NewFlagSet(string(mode), flag.ContinueOnError)
	productID := fs.String("product", "", "product ID (required)")
	size := fs.String("size", "", "variant size")
	color := fs.String("color", "", "variant color")
	qty := fs.String("qty", "1", "quantity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID == "" {
		return fmt.Errorf("-product is required")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	src := postgres.NewVariantSource(pool)

	product, err := src.Product(ctx, *productID)
	if err != nil {
		return err
	}
	variants, err := src.VariantsForProduct(ctx, *productID)
	if err != nil {
		return err
	}

	set := catalog.NewVariantSet(variants)
	sel := catalog.NewSelection(set)
	if *size != "" {
		sel.ChooseSize(*size)
	}
	if *color != "" {
		sel.ChooseColor(*color)
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	quantity := cart.ParseQuantity(*qty, sel.MaxStock(product))

	updated, disposition, err := a.engine.Commit(ctx, cart.CommitParams{
		Product:  product,
		Variants: set,
		Selected: sel.Variant,
		Quantity: quantity,
		Mode:     mode,
	})
	if err != nil {
		return fmt.Errorf("%s", domain.ErrorMessage(err))
	}

	switch disposition {
	case domain.DispositionCreated:
		fmt.Printf("Added %s to cart (%d lines)\n", product.Name, len(updated.Lines))
	case domain.DispositionUpdated:
		fmt.Printf("Updated quantity for %s (%d lines)\n", product.Name, len(updated.Lines))
	case domain.DispositionCheckout:
		fmt.Printf("Staged %s for checkout\n", product.Name)
	}
	return nil
}

func runShow(ctx context.Context, cfg *internal.Config, logger *slog.Logger) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	c, err := a.store.Get(ctx)
	if err != nil {
		return err
	}

	if len(c.Lines) == 0 {
		fmt.Println("Cart is empty")
		return nil
	}

	for _, l := range c.Lines {
		variant := ""
		if l.VariantID != "" {
			variant = fmt.Sprintf(" (%s/%s)", l.Size, l.Color)
		}
		fmt.Printf("%dx %s%s @ Rp%d = Rp%d\n", l.Quantity, l.Name, variant, l.Price, l.Subtotal())
	}
	fmt.Printf("Total: %d items, Rp%d\n", c.ItemCount(), c.Subtotal())
	return nil
}

func runClear(ctx context.Context, cfg *internal.Config, logger *slog.Logger) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Cart cleared")
	return nil
}
