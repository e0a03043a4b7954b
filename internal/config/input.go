package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input documents
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &InputParser{validate: v}
}

// decimalValue lets numeric tags such as gte=0 apply to decimal fields.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// LoadFromFile loads tax inputs from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxInputs, error) {
	var inputs domain.TaxInputs
	if err := readYAML(filename, &inputs); err != nil {
		return nil, err
	}

	if err := ip.ValidateInputs(&inputs); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &inputs, nil
}

// LoadBonusFile loads a bonus allocation question from a YAML file
func (ip *InputParser) LoadBonusFile(filename string) (*domain.BonusInputs, error) {
	var inputs domain.BonusInputs
	if err := readYAML(filename, &inputs); err != nil {
		return nil, err
	}

	if err := ip.ValidateBonus(&inputs); err != nil {
		return nil, fmt.Errorf("bonus validation failed: %w", err)
	}

	return &inputs, nil
}

// LoadProjectionFile loads mid-year projection inputs from a YAML file
func (ip *InputParser) LoadProjectionFile(filename string) (*domain.ProjectionInputs, error) {
	var inputs domain.ProjectionInputs
	if err := readYAML(filename, &inputs); err != nil {
		return nil, err
	}

	if err := ip.ValidateProjection(&inputs); err != nil {
		return nil, fmt.Errorf("projection validation failed: %w", err)
	}

	return &inputs, nil
}

func readYAML(filename string, out any) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// ValidateInputs checks struct tags first, then the rules that span fields.
func (ip *InputParser) ValidateInputs(inputs *domain.TaxInputs) error {
	if inputs.FilingStatus == "" {
		return fmt.Errorf("filing status: %w", domain.ErrMissingRequiredInput)
	}
	if !inputs.FilingStatus.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownFilingStatus, inputs.FilingStatus)
	}
	if inputs.TaxYear == 0 {
		return fmt.Errorf("tax year: %w", domain.ErrMissingRequiredInput)
	}
	if len(inputs.W2s) == 0 {
		return fmt.Errorf("at least one W-2: %w", domain.ErrMissingRequiredInput)
	}
	if err := ip.structErrors(inputs); err != nil {
		return err
	}

	for i, w := range inputs.W2s {
		if w.State != "" && !strings.EqualFold(w.State, calculation.StateCode) {
			return fmt.Errorf("w2s[%d]: state %q is not supported, only %s", i, w.State, calculation.StateCode)
		}
		if w.StateWages.IsPositive() && w.State == "" {
			return fmt.Errorf("w2s[%d]: state wages reported without a state", i)
		}
	}

	for i, s := range inputs.EquitySales {
		if s.SoldDate.Before(s.AcquiredDate) {
			return fmt.Errorf("equity_sales[%d] %s: sold before it was acquired", i, s.Label())
		}
		if !s.OfferDate.IsZero() && s.OfferDate.After(s.AcquiredDate) {
			return fmt.Errorf("equity_sales[%d] %s: offer date after purchase date", i, s.Label())
		}
	}

	for i, lot := range inputs.Brokerage.Lots {
		if !lot.SoldDate.IsZero() && !lot.AcquiredDate.IsZero() && lot.SoldDate.Before(lot.AcquiredDate) {
			return fmt.Errorf("brokerage.lots[%d]: sold before it was acquired", i)
		}
	}

	if !inputs.Rental.Active() && inputs.Rental.RentalIncome.IsPositive() {
		return fmt.Errorf("rental: income reported with a zero rental fraction")
	}

	return nil
}

// ValidateBonus checks a bonus question, including that every split sums to 100.
func (ip *InputParser) ValidateBonus(inputs *domain.BonusInputs) error {
	if err := ip.structErrors(inputs); err != nil {
		return err
	}
	if !inputs.StrikePrice.IsPositive() && strings.TrimSpace(inputs.Ticker) == "" {
		return fmt.Errorf("strike price or ticker: %w", domain.ErrMissingRequiredInput)
	}
	for i, s := range inputs.Splits {
		if err := calculation.ValidateSplit(s); err != nil {
			return fmt.Errorf("splits[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidateProjection checks a mid-year projection document.
func (ip *InputParser) ValidateProjection(inputs *domain.ProjectionInputs) error {
	if inputs.FilingStatus != "" && !inputs.FilingStatus.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownFilingStatus, inputs.FilingStatus)
	}
	if err := ip.structErrors(inputs); err != nil {
		return err
	}
	p := inputs.Paystub
	if p.PayDate.Year() != inputs.TaxYear {
		return fmt.Errorf("paystub pay date %s is outside tax year %d", p.PayDate.Format("2006-01-02"), inputs.TaxYear)
	}
	if p.YTDRSUIncome.GreaterThan(p.YTDGrossWages) {
		return fmt.Errorf("paystub: ytd RSU income %s exceeds ytd gross wages %s", p.YTDRSUIncome, p.YTDGrossWages)
	}
	for i, s := range inputs.PlannedSales {
		if s.Proceeds.IsZero() && s.CostBasis.IsZero() {
			return fmt.Errorf("planned_sales[%d]: %w: proceeds or cost basis", i, domain.ErrMissingRequiredInput)
		}
	}
	return nil
}

// structErrors runs the tag validator and turns the first failures into a
// readable error. Negative amounts map to ErrNegativeAmount, missing
// required fields to ErrMissingRequiredInput.
func (ip *InputParser) structErrors(v any) error {
	err := ip.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	var sentinel error
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
		if sentinel != nil {
			continue
		}
		switch fe.Tag() {
		case "gte", "gt":
			if fe.Param() == "0" {
				sentinel = domain.ErrNegativeAmount
			}
		case "required":
			sentinel = domain.ErrMissingRequiredInput
		}
	}

	joined := strings.Join(msgs, "; ")
	if sentinel != nil {
		return fmt.Errorf("%w: %s", sentinel, joined)
	}
	return errors.New(joined)
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), strings.SplitN(fe.Namespace(), ".", 2)[0]+".")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
