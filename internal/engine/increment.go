package engine

import "math"

// Band is one tier of the standard increment table: bids strictly below
// Below step by Step.
type Band struct {
	Below int64
	Step  int64
}

// IncrementBands is the default tier table. Steps are non-decreasing
// with price, which keeps every legal bid sequence strictly increasing
// by at least the band step.
var IncrementBands = []Band{
	{Below: 10_000_000, Step: 500_000},
	{Below: 20_000_000, Step: 1_000_000},
	{Below: 50_000_000, Step: 2_000_000},
	{Below: math.MaxInt64, Step: 2_500_000},
}

// StandardIncrement returns the tier step for the given leading amount.
func StandardIncrement(amount int64) int64 {
	for _, b := range IncrementBands {
		if amount < b.Below {
			return b.Step
		}
	}
	return IncrementBands[len(IncrementBands)-1].Step
}

// NextBidAmount computes what outbidding the current leading amount
// costs: the larger of the tier step and the configured minimum
// increment, on top of the leading amount.
func NextBidAmount(current int64, r Rules) int64 {
	inc := StandardIncrement(current)
	if r.MinBidIncrement > inc {
		inc = r.MinBidIncrement
	}
	return current + inc
}
