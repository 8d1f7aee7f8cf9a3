package split

import "github.com/shopspring/decimal"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Method returns the split method identifier
func (s *EqualStrategy) Method() Method {
	return MethodEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(totalAmount decimal.Decimal, participants []string, _ map[string]string) error {
	return validateBase(totalAmount, participants)
}

// Calculate divides the total amount evenly among all participants, rounding
// each share half-up to whole cents. Division rarely lands on a whole cent,
// so the leftover cents are assigned one each to the first participants in
// ascending ID order; the values then sum exactly to the total.
func (s *EqualStrategy) Calculate(totalAmount decimal.Decimal, participants []string, inputs map[string]string) (map[string]decimal.Decimal, error) {
	if err := s.Validate(totalAmount, participants, inputs); err != nil {
		return nil, err
	}

	n := decimal.NewFromInt(int64(len(participants)))
	share := totalAmount.DivRound(n, currencyScale)

	ids := sortedIDs(participants)
	splits := make(map[string]decimal.Decimal, len(ids))
	for _, id := range ids {
		splits[id] = share
	}

	// Residual cents left by the rounded division, positive or negative.
	residual := totalAmount.Sub(share.Mul(n))
	cents := residual.Abs().Shift(currencyScale).IntPart()
	cent := decimal.New(1, -currencyScale)
	if residual.Sign() < 0 {
		cent = cent.Neg()
	}
	for i := int64(0); i < cents; i++ {
		id := ids[i%int64(len(ids))]
		splits[id] = splits[id].Add(cent)
	}

	return splits, nil
}
