package split

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sumSplits(splits map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range splits {
		total = total.Add(v)
	}
	return total
}

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		participants []string
		wantErr      error
		validateFunc func(t *testing.T, splits map[string]decimal.Decimal)
	}{
		{
			name:         "three-way split of 100 sums exactly",
			amount:       "100.00",
			participants: []string{"bob", "alice", "carol"},
			validateFunc: func(t *testing.T, splits map[string]decimal.Decimal) {
				if got := sumSplits(splits); !got.Equal(dec("100.00")) {
					t.Errorf("sum = %s, want 100.00", got)
				}
				// Every share within a cent of 100/3; the leftover cent goes
				// to the first ID in sorted order.
				for id, v := range splits {
					if v.Sub(dec("33.33")).Abs().GreaterThan(dec("0.01")) {
						t.Errorf("%s share = %s, want within 0.01 of 33.33", id, v)
					}
				}
				if !splits["alice"].Equal(dec("33.34")) {
					t.Errorf("alice share = %s, want 33.34", splits["alice"])
				}
			},
		},
		{
			name:         "even division leaves shares untouched",
			amount:       "90.00",
			participants: []string{"a", "b", "c"},
			validateFunc: func(t *testing.T, splits map[string]decimal.Decimal) {
				for id, v := range splits {
					if !v.Equal(dec("30.00")) {
						t.Errorf("%s share = %s, want 30.00", id, v)
					}
				}
			},
		},
		{
			name:         "single participant owes everything",
			amount:       "42.37",
			participants: []string{"solo"},
			validateFunc: func(t *testing.T, splits map[string]decimal.Decimal) {
				if !splits["solo"].Equal(dec("42.37")) {
					t.Errorf("solo share = %s, want 42.37", splits["solo"])
				}
			},
		},
		{
			name:         "no participants",
			amount:       "10.00",
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "zero amount",
			amount:       "0",
			participants: []string{"a"},
			wantErr:      ErrNonPositiveAmount,
		},
	}

	strategy := &EqualStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := strategy.Calculate(dec(tt.amount), tt.participants, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(splits) != len(tt.participants) {
				t.Fatalf("got %d splits, want %d", len(splits), len(tt.participants))
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func TestSharesSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		participants []string
		inputs       map[string]string
		wantErr      error
		want         map[string]string
	}{
		{
			name:         "one-to-two shares of 90",
			amount:       "90.00",
			participants: []string{"a", "b"},
			inputs:       map[string]string{"a": "1", "b": "2"},
			want:         map[string]string{"a": "30.00", "b": "60.00"},
		},
		{
			name:         "fractional shares",
			amount:       "100.00",
			participants: []string{"a", "b"},
			inputs:       map[string]string{"a": "1.5", "b": "0.5"},
			want:         map[string]string{"a": "75.00", "b": "25.00"},
		},
		{
			name:         "zero total shares",
			amount:       "50.00",
			participants: []string{"a", "b"},
			inputs:       map[string]string{"a": "0", "b": "0"},
			wantErr:      ErrNonPositiveShares,
		},
		{
			name:         "non-numeric share",
			amount:       "50.00",
			participants: []string{"a", "b"},
			inputs:       map[string]string{"a": "1", "b": "two"},
			wantErr:      ErrInvalidNumber,
		},
		{
			name:         "missing share input",
			amount:       "50.00",
			participants: []string{"a", "b"},
			inputs:       map[string]string{"a": "1"},
			wantErr:      ErrMissingInput,
		},
	}

	strategy := &SharesStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := strategy.Calculate(dec(tt.amount), tt.participants, tt.inputs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for id, want := range tt.want {
				if !splits[id].Equal(dec(want)) {
					t.Errorf("%s share = %s, want %s", id, splits[id], want)
				}
			}
		})
	}
}

func TestPercentageSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		participants []string
		inputs       map[string]string
		wantErr      error
		want         map[string]string
	}{
		{
			name:         "sixty-forty",
			amount:       "200.00",
			participants: []string{"a", "b"},
			inputs:       map[string]string{"a": "60", "b": "40"},
			want:         map[string]string{"a": "120.00", "b": "80.00"},
		},
		{
			name:         "sum off by one percent fails",
			amount:       "200.00",
			participants: []string{"a", "b"},
			inputs:       map[string]string{"a": "60", "b": "39"},
			wantErr:      ErrInvalidPercentage,
		},
		{
			name:         "sum within tolerance passes",
			amount:       "100.00",
			participants: []string{"a", "b", "c"},
			inputs:       map[string]string{"a": "33.33", "b": "33.33", "c": "33.34"},
			want:         map[string]string{"a": "33.33", "b": "33.33", "c": "33.34"},
		},
		{
			name:         "non-numeric percentage",
			amount:       "100.00",
			participants: []string{"a", "b"},
			inputs:       map[string]string{"a": "sixty", "b": "40"},
			wantErr:      ErrInvalidNumber,
		},
	}

	strategy := &PercentageStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := strategy.Calculate(dec(tt.amount), tt.participants, tt.inputs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for id, want := range tt.want {
				if !splits[id].Equal(dec(want)) {
					t.Errorf("%s share = %s, want %s", id, splits[id], want)
				}
			}
		})
	}
}

// Whatever the method, the split values must sum to the total within a cent
// per participant.
func TestSplitSumInvariant(t *testing.T) {
	factory := NewSplitStrategyFactory()
	participants := []string{"u1", "u2", "u3", "u4", "u5"}

	cases := []struct {
		method Method
		amount string
		inputs map[string]string
	}{
		{MethodEqual, "103.37", nil},
		{MethodEqual, "0.07", nil},
		{MethodShares, "250.00", map[string]string{"u1": "1", "u2": "2", "u3": "3", "u4": "4", "u5": "5"}},
		{MethodShares, "99.99", map[string]string{"u1": "7", "u2": "11", "u3": "13", "u4": "17", "u5": "19"}},
		{MethodPercentage, "123.45", map[string]string{"u1": "10", "u2": "20", "u3": "30", "u4": "25", "u5": "15"}},
	}

	for _, c := range cases {
		strategy, err := factory.Create(c.method)
		if err != nil {
			t.Fatalf("factory: %v", err)
		}
		amount := dec(c.amount)
		splits, err := strategy.Calculate(amount, participants, c.inputs)
		if err != nil {
			t.Fatalf("%s %s: %v", c.method, c.amount, err)
		}
		tolerance := dec("0.01").Mul(decimal.NewFromInt(int64(len(participants))))
		if diff := sumSplits(splits).Sub(amount).Abs(); diff.GreaterThan(tolerance) {
			t.Errorf("%s %s: sum drifts by %s, tolerance %s", c.method, c.amount, diff, tolerance)
		}
	}
}

func TestFactoryUnknownMethod(t *testing.T) {
	factory := NewSplitStrategyFactory()
	if _, err := factory.CreateFromString("EXACT"); err == nil {
		t.Error("expected error for unknown split method")
	}
}

func TestDuplicateParticipantsRejected(t *testing.T) {
	// A repeated ID would collapse to one key in the splits map and the
	// persisted splits would no longer sum to the amount.
	participants := []string{"a", "a", "b"}
	inputs := map[string]string{"a": "50", "b": "50"}

	tests := []struct {
		name     string
		strategy Strategy
	}{
		{"equal", &EqualStrategy{}},
		{"shares", &SharesStrategy{}},
		{"percentage", &PercentageStrategy{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := tt.strategy.Calculate(dec("100.00"), participants, inputs)
			if !errors.Is(err, ErrDuplicateParticipant) {
				t.Fatalf("got %v, want ErrDuplicateParticipant", err)
			}
			if splits != nil {
				t.Errorf("got splits %v, want nil", splits)
			}
		})
	}
}
