package split

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Method defines how an expense is divided among its participants
type Method string

const (
	MethodEqual      Method = "EQUAL"
	MethodShares     Method = "SHARES"
	MethodPercentage Method = "PERCENTAGE"
)

const (
	// currencyScale is the scale of every owed amount (whole cents).
	currencyScale = 2
	// fractionScale is the intermediate precision for share/percentage
	// fractions before the final rounding to cents.
	fractionScale = 10
)

// Strategy is the interface that all split strategies must implement.
// Strategies are pure: same inputs, same splits, no side effects.
type Strategy interface {
	// Calculate computes each participant's owed amount. The returned map
	// covers every participant and its values sum to totalAmount within
	// rounding tolerance.
	Calculate(totalAmount decimal.Decimal, participants []string, inputs map[string]string) (map[string]decimal.Decimal, error)

	// Method returns the method identifier for this strategy
	Method() Method

	// Validate checks if the inputs are valid for this strategy
	Validate(totalAmount decimal.Decimal, participants []string, inputs map[string]string) error
}

// Factory creates split strategies based on the requested method
type Factory struct{}

// NewSplitStrategyFactory creates a new factory instance
func NewSplitStrategyFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the method
func (f *Factory) Create(method Method) (Strategy, error) {
	switch method {
	case MethodEqual:
		return &EqualStrategy{}, nil
	case MethodShares:
		return &SharesStrategy{}, nil
	case MethodPercentage:
		return &PercentageStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

// CreateFromString creates a strategy from a string method (useful for API requests)
func (f *Factory) CreateFromString(method string) (Strategy, error) {
	return f.Create(Method(method))
}

var (
	ErrUnknownMethod        = errors.New("unknown split method")
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrDuplicateParticipant = errors.New("participants must be unique")
	ErrNonPositiveAmount    = errors.New("amount must be greater than zero")
	ErrMissingInput         = errors.New("a value is required for every participant")
	ErrInvalidNumber        = errors.New("share and percentage values must be numeric")
	ErrNonPositiveShares    = errors.New("total shares must be greater than zero")
	ErrInvalidPercentage    = errors.New("percentages must sum to 100")
)

// percentageTolerance is how far the percentage sum may drift from 100.
var percentageTolerance = decimal.RequireFromString("0.1")

var hundred = decimal.NewFromInt(100)

// parseInputs parses the raw user-entered values for every participant.
func parseInputs(participants []string, inputs map[string]string) (map[string]decimal.Decimal, error) {
	parsed := make(map[string]decimal.Decimal, len(participants))
	for _, p := range participants {
		raw, ok := inputs[p]
		if !ok || strings.TrimSpace(raw) == "" {
			return nil, ErrMissingInput
		}
		value, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, ErrInvalidNumber
		}
		parsed[p] = value
	}
	return parsed, nil
}

// sortedIDs returns the participant IDs in ascending order. Rounding
// remainders are always assigned in this order so results are deterministic.
func sortedIDs(participants []string) []string {
	ids := make([]string, len(participants))
	copy(ids, participants)
	sort.Strings(ids)
	return ids
}

func validateBase(totalAmount decimal.Decimal, participants []string) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	// Participants form a set. A repeated ID would collapse to one map key
	// and the splits would no longer sum to the total.
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p] {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p)
		}
		seen[p] = true
	}
	if totalAmount.Sign() <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}
