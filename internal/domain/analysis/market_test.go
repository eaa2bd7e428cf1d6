package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnashakula/LeaseIQ/internal/domain/lease"
)

func testMarket() MarketData {
	rents := []decimal.Decimal{}
	for _, r := range []int64{2200, 2300, 2400, 2500, 2600, 2650, 2700, 2750, 2800, 2800} {
		rents = append(rents, decimal.NewFromInt(r))
	}
	return MarketData{
		Region:        "us-metro",
		Rents:         rents,
		AveragePetFee: decimal.NewFromInt(25),
	}
}

func TestMarketDataMedian(t *testing.T) {
	assert.True(t, testMarket().Median().Equal(decimal.NewFromInt(2625)))

	odd := MarketData{Rents: []decimal.Decimal{
		decimal.NewFromInt(3), decimal.NewFromInt(1), decimal.NewFromInt(2),
	}}
	assert.True(t, odd.Median().Equal(decimal.NewFromInt(2)))

	assert.True(t, MarketData{}.Median().IsZero())
}

func TestMarketDataPercentileStrictlyBelow(t *testing.T) {
	m := testMarket()

	pct := m.Percentile(decimal.NewFromInt(2200))
	require.NotNil(t, pct)
	assert.Equal(t, 0.0, *pct)

	pct = m.Percentile(decimal.NewFromInt(2201))
	require.NotNil(t, pct)
	assert.Equal(t, 10.0, *pct)

	pct = m.Percentile(decimal.NewFromInt(5000))
	require.NotNil(t, pct)
	assert.Equal(t, 100.0, *pct)

	assert.Nil(t, MarketData{}.Percentile(decimal.NewFromInt(2500)))
}

func TestCompareToMarketPositions(t *testing.T) {
	tests := []struct {
		name string
		rent string
		want string
	}{
		{"below market", "2100", PositionBelowMarket},
		{"at market", "2500", PositionAtMarket},
		{"above market", "3000", PositionAboveMarket},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &lease.Record{MonthlyRent: money(tt.rent)}
			got := CompareToMarket(rec, testMarket(), false)
			assert.Equal(t, tt.want, got.Position)
			require.NotNil(t, got.RentPercentile)
			require.NotNil(t, got.MarketMedian)
			assert.Equal(t, 10, got.SampleSize)
			assert.NotEmpty(t, got.Narrative)
		})
	}
}

func TestMarketDataRange(t *testing.T) {
	r := testMarket().Range()
	require.NotNil(t, r)
	assert.Equal(t, 2200.0, r.Min)
	assert.Equal(t, 2800.0, r.Max)

	assert.Nil(t, MarketData{}.Range())
}

func TestCompareToMarketSubjectRentAndRange(t *testing.T) {
	got := CompareToMarket(&lease.Record{MonthlyRent: money("2500")}, testMarket(), false)
	require.NotNil(t, got.SubjectRent)
	assert.Equal(t, 2500.0, *got.SubjectRent)
	require.NotNil(t, got.ComparableRentRange)
	assert.Equal(t, 2200.0, got.ComparableRentRange.Min)
	assert.Equal(t, 2800.0, got.ComparableRentRange.Max)
}

func TestCompareToMarketUnknownRent(t *testing.T) {
	got := CompareToMarket(&lease.Record{}, testMarket(), false)
	assert.Nil(t, got.RentPercentile)
	assert.Nil(t, got.SubjectRent)
	require.NotNil(t, got.ComparableRentRange)
	assert.Equal(t, PositionUnknown, got.Position)
	assert.Contains(t, got.Narrative, "insufficient data")
	assert.False(t, got.Degraded)
}

func TestCompareToMarketEmptyDataset(t *testing.T) {
	got := CompareToMarket(&lease.Record{MonthlyRent: money("2500")}, MarketData{}, false)
	assert.Nil(t, got.RentPercentile)
	require.NotNil(t, got.SubjectRent)
	assert.Nil(t, got.ComparableRentRange)
	assert.Equal(t, PositionUnknown, got.Position)
}

func TestCompareToMarketDegraded(t *testing.T) {
	got := CompareToMarket(&lease.Record{MonthlyRent: money("2500")}, MarketData{}, true)
	assert.True(t, got.Degraded)
	assert.Nil(t, got.RentPercentile)
	assert.Nil(t, got.SubjectRent)
	assert.Nil(t, got.ComparableRentRange)
	assert.Equal(t, PositionUnknown, got.Position)
	assert.Contains(t, got.Narrative, "unavailable")
}
