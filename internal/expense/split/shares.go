package split

import "github.com/shopspring/decimal"

// =============================================================================
// SHARES SPLIT STRATEGY
// Divides the expense proportionally to each participant's share count
// =============================================================================

// SharesStrategy implements the Strategy interface for proportional splits
type SharesStrategy struct{}

// Method returns the split method identifier
func (s *SharesStrategy) Method() Method {
	return MethodShares
}

// Validate checks if the inputs are valid for a shares split
func (s *SharesStrategy) Validate(totalAmount decimal.Decimal, participants []string, inputs map[string]string) error {
	if err := validateBase(totalAmount, participants); err != nil {
		return err
	}

	parsed, err := parseInputs(participants, inputs)
	if err != nil {
		return err
	}

	totalShares := decimal.Zero
	for _, share := range parsed {
		totalShares = totalShares.Add(share)
	}
	if totalShares.Sign() <= 0 {
		return ErrNonPositiveShares
	}

	return nil
}

// Calculate gives each participant amount x (share / total shares). The
// fraction is carried at ten fractional digits before the final half-up
// rounding to cents.
func (s *SharesStrategy) Calculate(totalAmount decimal.Decimal, participants []string, inputs map[string]string) (map[string]decimal.Decimal, error) {
	if err := s.Validate(totalAmount, participants, inputs); err != nil {
		return nil, err
	}

	parsed, _ := parseInputs(participants, inputs)
	totalShares := decimal.Zero
	for _, share := range parsed {
		totalShares = totalShares.Add(share)
	}

	splits := make(map[string]decimal.Decimal, len(participants))
	for _, id := range participants {
		fraction := parsed[id].DivRound(totalShares, fractionScale)
		splits[id] = fraction.Mul(totalAmount).Round(currencyScale)
	}

	return splits, nil
}
