package split

import "github.com/shopspring/decimal"

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on specified percentages for each participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Method returns the split method identifier
func (s *PercentageStrategy) Method() Method {
	return MethodPercentage
}

// Validate checks if the inputs are valid for a percentage split.
// The percentages must sum to 100 within a 0.1 tolerance.
func (s *PercentageStrategy) Validate(totalAmount decimal.Decimal, participants []string, inputs map[string]string) error {
	if err := validateBase(totalAmount, participants); err != nil {
		return err
	}

	parsed, err := parseInputs(participants, inputs)
	if err != nil {
		return err
	}

	totalPercentage := decimal.Zero
	for _, pct := range parsed {
		totalPercentage = totalPercentage.Add(pct)
	}
	if totalPercentage.Sub(hundred).Abs().GreaterThan(percentageTolerance) {
		return ErrInvalidPercentage
	}

	return nil
}

// Calculate gives each participant amount x (percentage / 100), rounded
// half-up to cents after a ten-digit intermediate division.
func (s *PercentageStrategy) Calculate(totalAmount decimal.Decimal, participants []string, inputs map[string]string) (map[string]decimal.Decimal, error) {
	if err := s.Validate(totalAmount, participants, inputs); err != nil {
		return nil, err
	}

	parsed, _ := parseInputs(participants, inputs)

	splits := make(map[string]decimal.Decimal, len(participants))
	for _, id := range participants {
		fraction := parsed[id].DivRound(hundred, fractionScale)
		splits[id] = fraction.Mul(totalAmount).Round(currencyScale)
	}

	return splits, nil
}
