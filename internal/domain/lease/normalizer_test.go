package lease

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMoney(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // "" means nil
	}{
		{"plain", "2500", "2500"},
		{"dollar sign", "$2500", "2500"},
		{"comma grouping", "$4,850.00", "4850"},
		{"usd suffix", "2500 USD", "2500"},
		{"cents preserved", "1234.56", "1234.56"},
		{"cents rounded", "1234.567", "1234.57"},
		{"below rent floor", "50", ""},
		{"above rent ceiling", "150000", ""},
		{"garbage", "two grand", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Normalize(map[string]string{FieldMonthlyRent: tt.in})
			if tt.want == "" {
				assert.Nil(t, r.MonthlyRent)
				return
			}
			require.NotNil(t, r.MonthlyRent)
			want := decimal.RequireFromString(tt.want)
			assert.True(t, r.MonthlyRent.Equal(want), "got %s want %s", r.MonthlyRent, want)
		})
	}
}

func TestNormalizeDepositAllowsZero(t *testing.T) {
	r := Normalize(map[string]string{FieldSecurityDeposit: "0"})
	require.NotNil(t, r.SecurityDeposit)
	assert.True(t, r.SecurityDeposit.IsZero())
}

func TestNormalizeDepositCeiling(t *testing.T) {
	r := Normalize(map[string]string{FieldSecurityDeposit: "100000"})
	require.NotNil(t, r.SecurityDeposit)
	assert.True(t, r.SecurityDeposit.Equal(decimal.NewFromInt(100000)))

	r = Normalize(map[string]string{FieldSecurityDeposit: "150000"})
	assert.Nil(t, r.SecurityDeposit)
}

func TestNormalizeFeeCeiling(t *testing.T) {
	r := Normalize(map[string]string{FieldPetFee: "8000", FieldLateFee: "10000"})
	require.NotNil(t, r.PetFee)
	assert.True(t, r.PetFee.Equal(decimal.NewFromInt(8000)))
	require.NotNil(t, r.LateFee)
	assert.True(t, r.LateFee.Equal(decimal.NewFromInt(10000)))

	r = Normalize(map[string]string{FieldPetFee: "10000.01"})
	assert.Nil(t, r.PetFee)
}

func TestNormalizeDates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // ISO date, "" means nil
	}{
		{"iso", "2025-03-01", "2025-03-01"},
		{"us slash", "03/01/2025", "2025-03-01"},
		{"short us slash", "3/1/2025", "2025-03-01"},
		{"long form", "March 1, 2025", "2025-03-01"},
		{"abbreviated", "Mar 1, 2025", "2025-03-01"},
		{"day first", "1 March 2025", "2025-03-01"},
		{"nonsense", "the first of March", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Normalize(map[string]string{FieldLeaseStart: tt.in})
			if tt.want == "" {
				assert.Nil(t, r.LeaseStart)
				return
			}
			require.NotNil(t, r.LeaseStart)
			assert.Equal(t, tt.want, r.LeaseStart.Format("2006-01-02"))
		})
	}
}

func TestNormalizeNoticePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"30", intPtr(30)},
		{"30 days", intPtr(30)},
		{"0", nil},
		{"400", nil},
		{"soon", nil},
		{"", nil},
	}
	for _, tt := range tests {
		r := Normalize(map[string]string{FieldNoticePeriodDays: tt.in})
		assert.Equal(t, tt.want, r.NoticePeriodDays, "input %q", tt.in)
	}
}

func TestNormalizeEscalationClause(t *testing.T) {
	for in, want := range map[string]bool{
		"true": true, "Yes": true, "1": true, "disclosed": true,
		"false": false, "no": false, "absent": false,
	} {
		r := Normalize(map[string]string{FieldEscalationClause: in})
		require.NotNil(t, r.HasEscalationClause, "input %q", in)
		assert.Equal(t, want, *r.HasEscalationClause, "input %q", in)
	}

	r := Normalize(map[string]string{FieldEscalationClause: "maybe"})
	assert.Nil(t, r.HasEscalationClause)
}

func TestNormalizeNilAndEmptyInput(t *testing.T) {
	for _, fields := range []map[string]string{nil, {}} {
		r := Normalize(fields)
		require.NotNil(t, r)
		assert.Nil(t, r.MonthlyRent)
		assert.Nil(t, r.LeaseStart)
		assert.Nil(t, r.NoticePeriodDays)
		assert.Nil(t, r.HasEscalationClause)
	}
}

func TestTermMonthsPrefersDateRange(t *testing.T) {
	start := date(2025, time.January, 1)
	end := date(2026, time.January, 1)
	stated := 6

	r := &Record{LeaseStart: &start, LeaseEnd: &end, TermMonthsStated: &stated}
	got := r.TermMonths()
	require.NotNil(t, got)
	assert.Equal(t, 12, *got)
}

func TestTermMonthsFallsBackToStated(t *testing.T) {
	stated := 18
	r := &Record{TermMonthsStated: &stated}
	got := r.TermMonths()
	require.NotNil(t, got)
	assert.Equal(t, 18, *got)
}

func TestTermMonthsInvertedRange(t *testing.T) {
	start := date(2026, time.January, 1)
	end := date(2025, time.January, 1)
	r := &Record{LeaseStart: &start, LeaseEnd: &end}
	assert.Nil(t, r.TermMonths())
	assert.False(t, r.HasValidDates())
}

func TestTermMonthsPartialMonth(t *testing.T) {
	start := date(2025, time.January, 15)
	end := date(2025, time.July, 10)
	r := &Record{LeaseStart: &start, LeaseEnd: &end}
	got := r.TermMonths()
	require.NotNil(t, got)
	assert.Equal(t, 5, *got)
}

func TestEscalationDisclosed(t *testing.T) {
	yes, no := true, false
	assert.True(t, (&Record{HasEscalationClause: &yes}).EscalationDisclosed())
	assert.False(t, (&Record{HasEscalationClause: &no}).EscalationDisclosed())
	assert.False(t, (&Record{}).EscalationDisclosed())
}

func intPtr(n int) *int { return &n }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
