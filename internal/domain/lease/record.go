// Package lease defines the normalized lease record that feeds the analysis
// engine, plus the normalizer that produces it from raw extracted fields.
package lease

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is a fully normalized lease.  Every field is optional: pointers are
// nil when the source document did not yield a usable value.  Downstream
// scoring treats nil as "unknown", never as zero.
type Record struct {
	MonthlyRent     *decimal.Decimal `json:"monthly_rent,omitempty"`
	SecurityDeposit *decimal.Decimal `json:"security_deposit,omitempty"`
	PetFee          *decimal.Decimal `json:"pet_fee,omitempty"`
	LateFee         *decimal.Decimal `json:"late_fee,omitempty"`

	LeaseStart *time.Time `json:"lease_start,omitempty"`
	LeaseEnd   *time.Time `json:"lease_end,omitempty"`

	NoticePeriodDays *int `json:"notice_period_days,omitempty"`

	// TermMonthsStated is the lease term as written in the document, when
	// present.  TermMonths() prefers the date range when both are known.
	TermMonthsStated *int `json:"term_months_stated,omitempty"`

	// HasEscalationClause reports whether the document discloses a rent
	// escalation schedule.  Unlike the money fields this is tri-state via
	// the pointer: nil means the document was silent.
	HasEscalationClause *bool `json:"has_escalation_clause,omitempty"`

	PropertyAddress *string `json:"property_address,omitempty"`
	TenantName      *string `json:"tenant_name,omitempty"`
	LandlordName    *string `json:"landlord_name,omitempty"`
}

// TermMonths returns the lease term in whole months.  The start/end date range
// wins over the stated term; the stated term is the fallback.  Returns nil
// when neither source is usable or the range is non-positive.
func (r *Record) TermMonths() *int {
	if r.LeaseStart != nil && r.LeaseEnd != nil {
		if !r.LeaseEnd.After(*r.LeaseStart) {
			return nil
		}
		months := monthsBetween(*r.LeaseStart, *r.LeaseEnd)
		if months < 1 {
			return nil
		}
		return &months
	}
	if r.TermMonthsStated != nil && *r.TermMonthsStated > 0 {
		m := *r.TermMonthsStated
		return &m
	}
	return nil
}

// HasValidDates reports whether both lease dates are present and ordered.
func (r *Record) HasValidDates() bool {
	return r.LeaseStart != nil && r.LeaseEnd != nil && r.LeaseEnd.After(*r.LeaseStart)
}

// EscalationDisclosed reports whether the document affirmatively discloses an
// escalation clause.  A silent document counts as not disclosed.
func (r *Record) EscalationDisclosed() bool {
	return r.HasEscalationClause != nil && *r.HasEscalationClause
}

func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return months
}

// RentFloat returns the monthly rent as a float64, or nil.  Report assembly
// renders money as JSON numbers.
func (r *Record) RentFloat() *float64 {
	return decimalToFloat(r.MonthlyRent)
}

func decimalToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}
