package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		participants []string
		want         map[string]string
	}{
		{
			name:         "even two-way split",
			total:        "18",
			participants: []string{"rossi", "bianchi"},
			want:         map[string]string{"rossi": "9.00", "bianchi": "9.00"},
		},
		{
			name:         "remainder cents go to first participants in order",
			total:        "1.00",
			participants: []string{"a", "b", "c"},
			want:         map[string]string{"a": "0.34", "b": "0.33", "c": "0.33"},
		},
		{
			name:         "large amount three-way",
			total:        "100",
			participants: []string{"a", "b", "c"},
			want:         map[string]string{"a": "33.34", "b": "33.33", "c": "33.33"},
		},
		{
			name:         "single participant gets everything",
			total:        "47.13",
			participants: []string{"solo"},
			want:         map[string]string{"solo": "47.13"},
		},
		{
			name:         "one cent among three",
			total:        "0.01",
			participants: []string{"a", "b", "c"},
			want:         map[string]string{"a": "0.01", "b": "0.00", "c": "0.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Split(d(tt.total), tt.participants)
			require.NoError(t, err)
			require.Len(t, shares, len(tt.want))
			for id, want := range tt.want {
				assert.True(t, shares[id].Equal(d(want)),
					"share for %s = %s, want %s", id, shares[id], want)
			}
		})
	}
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		participants []string
		wantCode     ValidationCode
	}{
		{"zero amount", "0", []string{"a"}, CodeInvalidAmount},
		{"negative amount", "-5", []string{"a"}, CodeInvalidAmount},
		{"sub-cent precision", "1.005", []string{"a"}, CodeInvalidAmount},
		{"no participants", "10", nil, CodeEmptyParticipants},
		{"duplicate participant", "10", []string{"a", "b", "a"}, CodeDuplicateParticipant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(d(tt.total), tt.participants)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantCode, verr.Code)
		})
	}
}

func TestSplitExactness(t *testing.T) {
	amounts := []string{"0.01", "0.05", "1.00", "7.31", "19.99", "100", "1234.56", "0.99"}
	for _, amount := range amounts {
		for n := 1; n <= 9; n++ {
			participants := make([]string, n)
			for i := range participants {
				participants[i] = string(rune('a' + i))
			}

			shares, err := Split(d(amount), participants)
			require.NoError(t, err)

			sum := decimal.Zero
			for _, s := range shares {
				sum = sum.Add(s)
			}
			assert.True(t, sum.Equal(d(amount)),
				"split(%s, %d) sums to %s", amount, n, sum)
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	participants := []string{"zoe", "anna", "marco", "luca", "elena"}
	first, err := Split(d("73.42"), participants)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Split(d("73.42"), participants)
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for id, share := range first {
			assert.True(t, again[id].Equal(share))
		}
	}
}

func TestSplitWeighted(t *testing.T) {
	t.Run("proportional shares reconcile", func(t *testing.T) {
		shares, err := SplitWeighted(d("10.00"), []string{"a", "b"}, map[string]decimal.Decimal{
			"a": d("2"),
			"b": d("1"),
		})
		require.NoError(t, err)
		assert.True(t, shares["a"].Equal(d("6.67")), "a = %s", shares["a"])
		assert.True(t, shares["b"].Equal(d("3.33")), "b = %s", shares["b"])
	})

	t.Run("uniform weights match equal split", func(t *testing.T) {
		participants := []string{"a", "b", "c"}
		weights := map[string]decimal.Decimal{"a": d("1"), "b": d("1"), "c": d("1")}

		weighted, err := SplitWeighted(d("1.00"), participants, weights)
		require.NoError(t, err)
		equal, err := Split(d("1.00"), participants)
		require.NoError(t, err)

		for _, p := range participants {
			assert.True(t, weighted[p].Equal(equal[p]))
		}
	})

	t.Run("missing weight rejected", func(t *testing.T) {
		_, err := SplitWeighted(d("10"), []string{"a", "b"}, map[string]decimal.Decimal{"a": d("1")})
		require.Error(t, err)
	})

	t.Run("zero total weight rejected", func(t *testing.T) {
		_, err := SplitWeighted(d("10"), []string{"a"}, map[string]decimal.Decimal{"a": d("0")})
		require.Error(t, err)
	})
}
