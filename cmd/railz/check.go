package main

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zoobzio/railz"
	"github.com/zoobzio/railz/examples/orders"
)

// selfCheck runs one pipeline against a freshly seeded store. Assertions
// are steps of the pipeline itself, so a failed assertion faults the run.
type selfCheck struct {
	run  func(ctx context.Context, repo orders.Repository, prices orders.PriceService) error
	name string
	desc string
}

var selfChecks = []selfCheck{
	{name: "save", desc: "a changed basket is saved to the store", run: checkSave},
	{name: "reserve", desc: "reserving takes one unit from the nearest location and saves it", run: checkReserve},
	{name: "full", desc: "a premium order abroad is discounted, reserved, priced and saved", run: checkFull},
}

var checkCmd = &cobra.Command{
	Use:       "check [save|reserve|full]...",
	Short:     "Run the order self-checks",
	Long:      "Run the named self-checks, or all of them, each against a freshly seeded store.",
	ValidArgs: []string{"save", "reserve", "full"},
	Args:      cobra.OnlyValidArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, closeStore, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore() //nolint:errcheck

		return runChecks(ctx, repo, cfg.Pricing.PriceService(), log, args)
	},
}

func runChecks(ctx context.Context, repo orders.Repository, prices orders.PriceService, log zerolog.Logger, names []string) error {
	selected := selfChecks
	if len(names) > 0 {
		selected = nil
		for _, name := range names {
			c, ok := findCheck(name)
			if !ok {
				return errors.Errorf("unknown check %q", name)
			}
			selected = append(selected, c)
		}
	}

	var failed []string
	for _, c := range selected {
		l := log.With().Str("check", c.name).Logger()
		l.Info().Msg(c.desc)
		if err := orders.Seed(ctx, repo); err != nil {
			return err
		}
		if err := c.run(ctx, repo, prices); err != nil {
			l.Error().Err(err).Msg("check failed")
			failed = append(failed, c.name)
			continue
		}
		l.Info().Msg("check passed")
	}
	if len(failed) > 0 {
		return errors.Errorf("%d check(s) failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

func findCheck(name string) (selfCheck, bool) {
	for _, c := range selfChecks {
		if c.name == name {
			return c, true
		}
	}
	return selfCheck{}, false
}

// outcomeErr reduces an outcome to an error, nil only for Success.
func outcomeErr[V, S any](out railz.Outcome[V, S]) error {
	return railz.Match(out, railz.Cases[V, S, error]{
		Success: func(railz.Pair[V, S]) error { return nil },
		Absent:  func() error { return errors.New("pipeline produced no value") },
		Faulted: func(err error) error { return err },
		Invalid: func(msg string, _ railz.Option[V], _ railz.Option[S]) error {
			return errors.Errorf("pipeline ended invalid: %s", msg)
		},
	})
}

func checkSave(ctx context.Context, repo orders.Repository, prices orders.PriceService) error {
	basket, err := orders.SampleBasket(ctx, repo)
	if err != nil {
		return err
	}
	basket.Delivered = true

	s := orders.NewScenarios(repo, orders.WithPricing(prices))
	out := s.SaveBasket(ctx).
		TapPair(func(b *orders.Basket, r orders.Repository) error {
			saved, err := orders.Load[orders.Basket](ctx, r, b.RecordKey())
			if err != nil {
				return err
			}
			if !saved.Delivered {
				return errors.New("saved basket is not marked delivered")
			}
			return nil
		}).
		Run(basket)
	return outcomeErr(out)
}

func checkReserve(ctx context.Context, repo orders.Repository, prices orders.PriceService) error {
	basket, err := orders.SampleBasket(ctx, repo)
	if err != nil {
		return err
	}
	nearest, err := orders.NewStockService(repo).NearestLocation(ctx, basket.Product, basket.Stock)
	if err != nil {
		return err
	}
	if nearest == nil {
		return errors.Errorf("%s is not on stock", basket.Product.Name)
	}
	before := nearest.Amount

	s := orders.NewScenarios(repo, orders.WithPricing(prices))
	out := s.ReserveProduct(ctx).
		TapSupplement(func(r *orders.Reservation) error {
			if r.Location.Amount != before-1 {
				return errors.Errorf("expected %d left after reserving, got %d", before-1, r.Location.Amount)
			}
			return nil
		}).
		TapSupplement(func(r *orders.Reservation) error {
			stored, err := orders.Load[orders.ProductStockLocation](ctx, repo, r.Location.RecordKey())
			if err != nil {
				return err
			}
			if stored.Amount != r.Location.Amount {
				return errors.Errorf("stored amount %d does not match reserved amount %d", stored.Amount, r.Location.Amount)
			}
			return nil
		}).
		Run(basket)
	return outcomeErr(out)
}

func checkFull(ctx context.Context, repo orders.Repository, prices orders.PriceService) error {
	basket, err := orders.SampleBasket(ctx, repo)
	if err != nil {
		return err
	}
	listPrice := basket.Product.Price
	stockBefore, err := totalStock(ctx, repo, basket.Product)
	if err != nil {
		return err
	}

	s := orders.NewScenarios(repo, orders.WithPricing(prices))
	order := railz.Nest(railz.Init[*orders.Basket](), s.PremiumDiscount())
	order = railz.Nest(order, s.ReserveAndPrice(ctx)).
		TapValue(func(b *orders.Basket) error {
			left, err := totalStock(ctx, repo, b.Product)
			if err != nil {
				return err
			}
			if left != stockBefore-1 {
				return errors.Errorf("expected %d %s left, got %d", stockBefore-1, b.Product.Name, left)
			}
			return nil
		}).
		TapValue(func(b *orders.Basket) error {
			want := listPrice - prices.Rebate + prices.ForeignFee
			if b.Result.Price != want {
				return errors.Errorf("expected price %.2f, got %.2f", want, b.Result.Price)
			}
			return nil
		})
	order = railz.Nest(order, s.SaveBasket(ctx))

	return outcomeErr(order.Run(basket))
}

// totalStock sums the amount of product held across all locations.
func totalStock(ctx context.Context, repo orders.Repository, product *orders.Product) (int, error) {
	all, err := orders.LoadAll[orders.ProductStockLocation](ctx, repo, orders.KindProductStock)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, psl := range all {
		if psl.Product.ID == product.ID {
			total += psl.Amount
		}
	}
	return total, nil
}
