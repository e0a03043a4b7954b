package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BonusSplit is one RSU/ISO percentage pair; the two must sum to 100.
type BonusSplit struct {
	RSUPercent decimal.Decimal `yaml:"rsu_percent" json:"rsu_percent" validate:"gte=0,lte=100"`
	ISOPercent decimal.Decimal `yaml:"iso_percent" json:"iso_percent" validate:"gte=0,lte=100"`
}

// Name renders the split as "RSU/ISO".
func (s BonusSplit) Name() string {
	return s.RSUPercent.String() + "/" + s.ISOPercent.String()
}

// DefaultBonusSplits are the standard comparison scenarios.
var DefaultBonusSplits = []BonusSplit{
	{RSUPercent: decimal.NewFromInt(100), ISOPercent: decimal.Zero},
	{RSUPercent: decimal.NewFromInt(80), ISOPercent: decimal.NewFromInt(20)},
	{RSUPercent: decimal.NewFromInt(50), ISOPercent: decimal.NewFromInt(50)},
	{RSUPercent: decimal.NewFromInt(20), ISOPercent: decimal.NewFromInt(80)},
	{RSUPercent: decimal.Zero, ISOPercent: decimal.NewFromInt(100)},
}

// BonusInputs describes a bonus allocation question. When StrikePrice is
// zero it is resolved as the historical price of Ticker on PurchaseDate.
type BonusInputs struct {
	BonusAmount   decimal.Decimal `yaml:"bonus_amount" json:"bonus_amount" validate:"gt=0"`
	Ticker        string          `yaml:"ticker,omitempty" json:"ticker,omitempty"`
	PurchaseDate  time.Time       `yaml:"purchase_date" json:"purchase_date" validate:"required"`
	StrikePrice   decimal.Decimal `yaml:"strike_price" json:"strike_price" validate:"gte=0"`
	TargetPrice   decimal.Decimal `yaml:"target_price" json:"target_price" validate:"gt=0"`
	ISOMultiplier decimal.Decimal `yaml:"iso_multiplier" json:"iso_multiplier" validate:"gte=0"`
	Splits        []BonusSplit    `yaml:"splits,omitempty" json:"splits,omitempty" validate:"dive"`
}

// BonusAllocation is the outcome of one split.
type BonusAllocation struct {
	Split              BonusSplit      `json:"split"`
	BonusAmount        decimal.Decimal `json:"bonus_amount"`
	StrikePrice        decimal.Decimal `json:"strike_price"`
	TargetPrice        decimal.Decimal `json:"target_price"`
	RSUAllocation      decimal.Decimal `json:"rsu_allocation"`
	ISOAllocation      decimal.Decimal `json:"iso_allocation"`
	RSUShares          decimal.Decimal `json:"rsu_shares"`
	ISOSharesBase      decimal.Decimal `json:"iso_shares_base"`
	ISOSharesTotal     decimal.Decimal `json:"iso_shares_total"`
	RSUProceeds        decimal.Decimal `json:"rsu_proceeds"`
	ISOProceeds        decimal.Decimal `json:"iso_proceeds"`
	TotalProceeds      decimal.Decimal `json:"total_proceeds"`
	TotalReturnPercent decimal.Decimal `json:"total_return_percent"`
}

// BonusComparison collects the allocations of every requested split.
type BonusComparison struct {
	Inputs      BonusInputs       `json:"inputs"`
	Allocations []BonusAllocation `json:"allocations"`
	Best        string            `json:"best"`
}
