package analysis

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/krishnashakula/LeaseIQ/internal/domain/lease"
)

// Revenue opportunity types, in heuristic definition order.  Ties on annual
// value keep this order.
const (
	OpportunityBelowMarketRent   = "below_market_rent"
	OpportunityMissingEscalation = "missing_escalation"
	OpportunityUnmonetizedPetFee = "unmonetized_pet_fee"
)

var (
	twelve         = decimal.NewFromInt(12)
	escalationRate = decimal.NewFromFloat(0.03)

	opportunityOrder = map[string]int{
		OpportunityBelowMarketRent:   0,
		OpportunityMissingEscalation: 1,
		OpportunityUnmonetizedPetFee: 2,
	}
)

// DetectRevenueOpportunities runs the upside heuristics and returns them
// sorted by descending annual value.  Heuristics that depend on market data
// are skipped when the dataset is degraded; heuristics that depend on rent
// are skipped when rent is unknown.  The total is the exact sum of the listed
// opportunities.
func DetectRevenueOpportunities(rec *lease.Record, data MarketData, degraded bool) RevenueOpportunitySet {
	raw := make([]rawOpportunity, 0, 3)

	if !degraded && rec.MonthlyRent != nil {
		if pct := data.Percentile(*rec.MonthlyRent); pct != nil && *pct < belowMarketPercentile {
			median := data.Median()
			if uplift := median.Sub(*rec.MonthlyRent); uplift.IsPositive() {
				annual := uplift.Mul(twelve)
				raw = append(raw, rawOpportunity{
					typ: OpportunityBelowMarketRent,
					description: fmt.Sprintf(
						"rent is in the bottom decile of comparables; raising toward the market median of %s is worth %s per year",
						median.StringFixed(2), annual.StringFixed(2)),
					annual: annual,
					effort: EffortLow,
				})
			}
		}
	}

	if rec.MonthlyRent != nil && !rec.EscalationDisclosed() {
		annual := rec.MonthlyRent.Mul(escalationRate).Mul(twelve)
		raw = append(raw, rawOpportunity{
			typ: OpportunityMissingEscalation,
			description: fmt.Sprintf(
				"no escalation clause; a standard 3%% annual increase is worth %s in the first year",
				annual.StringFixed(2)),
			annual: annual,
			effort: EffortLow,
		})
	}

	if !degraded && (rec.PetFee == nil || rec.PetFee.IsZero()) && data.AveragePetFee.IsPositive() {
		annual := data.AveragePetFee.Mul(twelve)
		raw = append(raw, rawOpportunity{
			typ: OpportunityUnmonetizedPetFee,
			description: fmt.Sprintf(
				"no pet fee is charged; the market average of %s per month is worth %s per year",
				data.AveragePetFee.StringFixed(2), annual.StringFixed(2)),
			annual: annual,
			effort: EffortMedium,
		})
	}

	sort.SliceStable(raw, func(i, j int) bool {
		switch raw[i].annual.Cmp(raw[j].annual) {
		case 1:
			return true
		case -1:
			return false
		default:
			return opportunityOrder[raw[i].typ] < opportunityOrder[raw[j].typ]
		}
	})

	total := decimal.Zero
	opportunities := make([]RevenueOpportunity, 0, len(raw))
	for _, o := range raw {
		total = total.Add(o.annual)
		value, _ := o.annual.Float64()
		opportunities = append(opportunities, RevenueOpportunity{
			Type:        o.typ,
			Description: o.description,
			AnnualValue: value,
			Effort:      o.effort,
		})
	}
	totalF, _ := total.Float64()

	return RevenueOpportunitySet{
		Opportunities:    opportunities,
		TotalAnnualValue: totalF,
	}
}

type rawOpportunity struct {
	typ         string
	description string
	annual      decimal.Decimal
	effort      string
}
