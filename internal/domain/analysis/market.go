package analysis

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/krishnashakula/LeaseIQ/internal/domain/lease"
)

// MarketData is the comparable-rents snapshot a comparison runs against.
type MarketData struct {
	Region        string
	Rents         []decimal.Decimal
	AveragePetFee decimal.Decimal
}

// MarketDataProvider supplies the dataset.  A provider error degrades the
// market section and every market-dependent heuristic instead of failing the
// analysis.
type MarketDataProvider interface {
	MarketData() (MarketData, error)
}

// Median returns the dataset median, or zero when the dataset is empty.
// Even-sized datasets take the mean of the two middle values.
func (m MarketData) Median() decimal.Decimal {
	n := len(m.Rents)
	if n == 0 {
		return decimal.Zero
	}
	sorted := make([]decimal.Decimal, n)
	copy(sorted, m.Rents)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	if n%2 == 1 {
		return sorted[n/2]
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
}

// Range returns the dataset min and max, or nil for an empty dataset.
func (m MarketData) Range() *RentRange {
	if len(m.Rents) == 0 {
		return nil
	}
	min, max := m.Rents[0], m.Rents[0]
	for _, r := range m.Rents[1:] {
		if r.LessThan(min) {
			min = r
		}
		if r.GreaterThan(max) {
			max = r
		}
	}
	minF, _ := min.Float64()
	maxF, _ := max.Float64()
	return &RentRange{Min: minF, Max: maxF}
}

// Percentile returns the percentage of comparable rents strictly below the
// given rent, in [0, 100).  An empty dataset returns nil.
func (m MarketData) Percentile(rent decimal.Decimal) *float64 {
	n := len(m.Rents)
	if n == 0 {
		return nil
	}
	below := 0
	for _, r := range m.Rents {
		if r.LessThan(rent) {
			below++
		}
	}
	p := float64(below) / float64(n) * 100
	return &p
}

// Market position thresholds on the percentile scale.
const (
	belowMarketPercentile = 10.0
	aboveMarketPercentile = 90.0
)

// CompareToMarket positions the lease rent within the dataset.  A nil rent or
// an unavailable dataset produces an insufficient-data comparison rather than
// an error; Degraded marks provider failures so callers can tell the two
// apart.
func CompareToMarket(rec *lease.Record, data MarketData, degraded bool) MarketComparison {
	if degraded {
		return MarketComparison{
			Position:  PositionUnknown,
			Narrative: "market data is currently unavailable; comparison skipped",
			Degraded:  true,
		}
	}
	if rec.MonthlyRent == nil {
		return MarketComparison{
			ComparableRentRange: data.Range(),
			SampleSize:          len(data.Rents),
			Position:            PositionUnknown,
			Narrative:           "monthly rent could not be determined; insufficient data for a market comparison",
		}
	}
	rentF, _ := rec.MonthlyRent.Float64()
	pct := data.Percentile(*rec.MonthlyRent)
	if pct == nil {
		return MarketComparison{
			SubjectRent: &rentF,
			Position:    PositionUnknown,
			Narrative:   "no comparable rents are available for this region",
		}
	}

	median := data.Median()
	medianF, _ := median.Float64()

	position := PositionAtMarket
	switch {
	case *pct < belowMarketPercentile:
		position = PositionBelowMarket
	case *pct >= aboveMarketPercentile:
		position = PositionAboveMarket
	}

	return MarketComparison{
		SubjectRent:         &rentF,
		ComparableRentRange: data.Range(),
		RentPercentile:      pct,
		MarketMedian:        &medianF,
		SampleSize:          len(data.Rents),
		Position:            position,
		Narrative: fmt.Sprintf(
			"monthly rent of %s sits at the %.0fth percentile of %d comparable leases (median %s)",
			rec.MonthlyRent.StringFixed(2), *pct, len(data.Rents), median.StringFixed(2)),
	}
}
