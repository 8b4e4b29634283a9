package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zoobzio/railz/examples/orders"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Seed the store and execute the sample order",
	Long: `Reset the store to the sample catalogue, then order a Honda Civic for
the premium customer: apply the discount, reserve it at the nearest stock
location, price the transport and save the basket.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		repo, closeStore, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore() //nolint:errcheck

		return runOrder(ctx, repo, cfg.Pricing.PriceService(), log)
	},
}

func runOrder(ctx context.Context, repo orders.Repository, prices orders.PriceService, log zerolog.Logger) error {
	if err := orders.Seed(ctx, repo); err != nil {
		return err
	}
	basket, err := orders.SampleBasket(ctx, repo)
	if err != nil {
		return err
	}

	s := orders.NewScenarios(repo,
		orders.WithPricing(prices),
		orders.WithHooks(orders.NewLogHook(log)),
	)
	obs, err := orders.Observe("execute-order", s.ExecuteOrder(ctx), log)
	if err != nil {
		return err
	}
	defer obs.Close()

	out := obs.Process(ctx, basket)
	msg := orders.Describe(out)
	if !out.IsSuccess() {
		log.Error().Str("kind", out.Kind().String()).Msg(msg)
		return errors.New(msg)
	}
	log.Info().Msg(msg)
	return nil
}
