package lease

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Raw field keys produced by the extraction layer.
const (
	FieldMonthlyRent      = "monthly_rent"
	FieldSecurityDeposit  = "security_deposit"
	FieldPetFee           = "pet_fee"
	FieldLateFee          = "late_fee"
	FieldLeaseStart       = "lease_start"
	FieldLeaseEnd         = "lease_end"
	FieldNoticePeriodDays = "notice_period_days"
	FieldLeaseTermMonths  = "lease_term_months"
	FieldEscalationClause = "has_escalation_clause"
	FieldPropertyAddress  = "property_address"
	FieldTenantName       = "tenant_name"
	FieldLandlordName     = "landlord_name"
)

// Plausibility bounds.  Values outside a bound are discarded as extraction
// noise rather than clamped, so a garbled "$1" rent does not masquerade as a
// real data point.
var (
	minRent    = decimal.NewFromInt(100)
	maxRent    = decimal.NewFromInt(100000)
	minMoney   = decimal.Zero
	maxDeposit = decimal.NewFromInt(100000)
	maxFee     = decimal.NewFromInt(10000)
)

const (
	minNoticeDays = 1
	maxNoticeDays = 365
	minTermMonths = 1
	maxTermMonths = 60
)

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	time.RFC3339,
}

// Normalize converts raw extracted field strings into a typed Record.  It is
// total: unparseable or implausible values become nil fields, never errors.
// A nil map yields an empty record.
func Normalize(fields map[string]string) *Record {
	r := &Record{}
	if len(fields) == 0 {
		return r
	}

	r.MonthlyRent = parseMoney(fields[FieldMonthlyRent], minRent, maxRent)
	r.SecurityDeposit = parseMoney(fields[FieldSecurityDeposit], minMoney, maxDeposit)
	r.PetFee = parseMoney(fields[FieldPetFee], minMoney, maxFee)
	r.LateFee = parseMoney(fields[FieldLateFee], minMoney, maxFee)

	r.LeaseStart = parseDate(fields[FieldLeaseStart])
	r.LeaseEnd = parseDate(fields[FieldLeaseEnd])

	r.NoticePeriodDays = parseBoundedInt(fields[FieldNoticePeriodDays], minNoticeDays, maxNoticeDays)
	r.TermMonthsStated = parseBoundedInt(fields[FieldLeaseTermMonths], minTermMonths, maxTermMonths)

	r.HasEscalationClause = parseBool(fields[FieldEscalationClause])

	r.PropertyAddress = parseText(fields[FieldPropertyAddress])
	r.TenantName = parseText(fields[FieldTenantName])
	r.LandlordName = parseText(fields[FieldLandlordName])

	return r
}

func parseMoney(s string, min, max decimal.Decimal) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(strings.TrimSuffix(s, "USD"))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	if d.LessThan(min) || d.GreaterThan(max) {
		return nil
	}
	d = d.Round(2)
	return &d
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func parseBoundedInt(s string, min, max int) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// tolerate "30 days", "12 months" style suffixes
		parts := strings.Fields(s)
		if len(parts) == 0 {
			return nil
		}
		n, err = strconv.Atoi(parts[0])
		if err != nil {
			return nil
		}
	}
	if n < min || n > max {
		return nil
	}
	return &n
}

func parseBool(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "present", "disclosed":
		v := true
		return &v
	case "false", "no", "n", "0", "absent", "none":
		v := false
		return &v
	default:
		return nil
	}
}

func parseText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
