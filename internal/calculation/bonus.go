package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/pricing"
	money "github.com/rpgo/tax-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// BONUS ALLOCATION ASSUMPTIONS:
//
// 1. The strike and RSU purchase price are the closing price on the grant date.
// 2. Every ISO dollar buys ISOMultiplier times as many options as an RSU
//    dollar buys shares (3 by default).
// 3. ISOs are exercised cashless at the target price: only the spread is kept.
// 4. Proceeds are pre-tax.

// defaultISOMultiplier is the option leverage used when none is given.
var defaultISOMultiplier = decimal.NewFromInt(3)

var hundred = decimal.NewFromInt(100)

// ValidateSplit enforces that a split's percentages are non-negative and sum to 100.
func ValidateSplit(s domain.BonusSplit) error {
	if s.RSUPercent.IsNegative() || s.ISOPercent.IsNegative() {
		return fmt.Errorf("split %s: %w", s.Name(), domain.ErrNegativeAmount)
	}
	if !s.RSUPercent.Add(s.ISOPercent).Equal(hundred) {
		return fmt.Errorf("split %s: %w", s.Name(), domain.ErrInvalidAllocation)
	}
	return nil
}

// AllocateBonus computes the outcome of one RSU/ISO split at a known strike.
func AllocateBonus(in domain.BonusInputs, split domain.BonusSplit) (domain.BonusAllocation, error) {
	if err := ValidateSplit(split); err != nil {
		return domain.BonusAllocation{}, err
	}
	if !in.BonusAmount.IsPositive() {
		return domain.BonusAllocation{}, fmt.Errorf("bonus amount must be positive, got %s", in.BonusAmount)
	}
	if !in.StrikePrice.IsPositive() {
		return domain.BonusAllocation{}, fmt.Errorf("strike price: %w", domain.ErrMissingRequiredInput)
	}
	if !in.TargetPrice.IsPositive() {
		return domain.BonusAllocation{}, fmt.Errorf("target price: %w", domain.ErrMissingRequiredInput)
	}
	multiplier := in.ISOMultiplier
	if !multiplier.IsPositive() {
		multiplier = defaultISOMultiplier
	}

	rsuDollars := in.BonusAmount.Mul(split.RSUPercent).Div(hundred)
	isoDollars := in.BonusAmount.Mul(split.ISOPercent).Div(hundred)

	rsuShares := rsuDollars.Div(in.StrikePrice)
	isoBase := isoDollars.Div(in.StrikePrice)
	isoTotal := isoBase.Mul(multiplier)

	rsuProceeds := rsuShares.Mul(in.TargetPrice)
	spread := decimal.Max(in.TargetPrice.Sub(in.StrikePrice), decimal.Zero)
	isoProceeds := isoTotal.Mul(spread)
	total := rsuProceeds.Add(isoProceeds)

	return domain.BonusAllocation{
		Split:              split,
		BonusAmount:        in.BonusAmount,
		StrikePrice:        in.StrikePrice,
		TargetPrice:        in.TargetPrice,
		RSUAllocation:      rsuDollars,
		ISOAllocation:      isoDollars,
		RSUShares:          rsuShares,
		ISOSharesBase:      isoBase,
		ISOSharesTotal:     isoTotal,
		RSUProceeds:        rsuProceeds,
		ISOProceeds:        isoProceeds,
		TotalProceeds:      total,
		TotalReturnPercent: money.Percent(total.Sub(in.BonusAmount), in.BonusAmount),
	}, nil
}

// ResolveStrike fills in the strike from the grant-date close when it is not
// given. An unresolved price is fatal here: nothing can be computed without it.
func ResolveStrike(ctx context.Context, in domain.BonusInputs, lookup pricing.Lookup) (domain.BonusInputs, error) {
	if in.StrikePrice.IsPositive() {
		return in, nil
	}
	if in.Ticker == "" {
		return in, fmt.Errorf("strike price or ticker: %w", domain.ErrMissingRequiredInput)
	}
	if lookup == nil {
		lookup = pricing.None
	}
	out := lookup.Price(ctx, in.Ticker, in.PurchaseDate)
	if !out.Resolved {
		return in, fmt.Errorf("strike price for %s on %s: %w: %s", pricing.NormalizeTicker(in.Ticker),
			in.PurchaseDate.Format("2006-01-02"), domain.ErrMissingRequiredInput, out.Reason)
	}
	in.StrikePrice = out.Price
	return in, nil
}

// RunBonusScenarios evaluates every split concurrently. Results are ordered
// by RSU share, highest first, and Best names the split with the largest
// proceeds.
func RunBonusScenarios(ctx context.Context, in domain.BonusInputs, lookup pricing.Lookup) (*domain.BonusComparison, error) {
	in, err := ResolveStrike(ctx, in, lookup)
	if err != nil {
		return nil, err
	}
	splits := in.Splits
	if len(splits) == 0 {
		splits = domain.DefaultBonusSplits
	}
	for _, s := range splits {
		if err := ValidateSplit(s); err != nil {
			return nil, err
		}
	}

	allocations := make([]domain.BonusAllocation, len(splits))
	g, gctx := errgroup.WithContext(ctx)
	for i, split := range splits {
		i, split := i, split
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			alloc, err := AllocateBonus(in, split)
			if err != nil {
				return err
			}
			allocations[i] = alloc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(allocations, func(i, j int) bool {
		return allocations[i].Split.RSUPercent.GreaterThan(allocations[j].Split.RSUPercent)
	})

	best := allocations[0]
	for _, a := range allocations[1:] {
		if a.TotalProceeds.GreaterThan(best.TotalProceeds) {
			best = a
		}
	}

	return &domain.BonusComparison{
		Inputs:      in,
		Allocations: allocations,
		Best:        best.Split.Name(),
	}, nil
}
