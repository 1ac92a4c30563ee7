package scenario

import "testing"

func TestCost(t *testing.T) {
	pricing := Pricing{InputPerMTok: 0.15, OutputPerMTok: 0.6}

	cases := []struct {
		name      string
		tokensIn  int
		tokensOut int
		want      float64
	}{
		{"zero tokens", 0, 0, 0},
		{"input only", 1000000, 0, 0.15},
		{"output only", 0, 1000000, 0.6},
		{"mixed", 1200, 3400, 0.00222},
		{"rounded to 6 places", 1234567, 7654321, 4.777778},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Cost(tc.tokensIn, tc.tokensOut, pricing); got != tc.want {
				t.Fatalf("Cost(%d, %d) = %v, want %v", tc.tokensIn, tc.tokensOut, got, tc.want)
			}
		})
	}
}

func TestCostFreePricing(t *testing.T) {
	if got := Cost(5000, 5000, Pricing{}); got != 0 {
		t.Fatalf("Cost with zero pricing = %v, want 0", got)
	}
}
