package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/krishnashakula/LeaseIQ/internal/domain/lease"
)

// Risk factor weights.  The score is the sum of triggered factors, clamped
// to [0, 100].
const (
	riskShortNoticePoints     = 25
	riskExcessiveDepositPts   = 20
	riskShortTermPoints       = 15
	riskNoEscalationPoints    = 10
	riskUnknownRentPoints     = 10
	minNoticePeriodDays       = 30
	minComfortableTermMonths  = 6
	depositToRentCapMultipler = 2
)

// riskRecommendations maps each factor code to its fixed mitigation advice.
// Recommendations are emitted in factor trigger order, one per factor.
var riskRecommendations = map[string]string{
	"NOTICE-SHORT":      "Negotiate a termination notice period of at least 30 days",
	"DEPOSIT-EXCESSIVE": "Negotiate the security deposit down to at most 2x the monthly rent",
	"TERM-SHORT":        "Consider a longer lease term to reduce turnover exposure",
	"ESCALATION-ABSENT": "Add a rent escalation clause covering annual increases",
	"RENT-UNKNOWN":      "Confirm the monthly rent amount in writing before signing",
}

// ScoreRisk evaluates every risk heuristic against the lease and returns the
// clamped score, its level, the triggered factors and their recommendations.
// Missing data is itself a risk signal: an absent notice period scores the
// same as a short one.
func ScoreRisk(rec *lease.Record) RiskAssessment {
	factors := make([]RiskFactor, 0, 5)
	recommendations := make([]string, 0, 5)
	score := 0

	add := func(code, desc string, points int) {
		factors = append(factors, RiskFactor{Code: code, Description: desc, Points: points})
		recommendations = append(recommendations, riskRecommendations[code])
		score += points
	}

	if rec.NoticePeriodDays == nil {
		add("NOTICE-SHORT", "notice period is missing from the lease", riskShortNoticePoints)
	} else if *rec.NoticePeriodDays < minNoticePeriodDays {
		add("NOTICE-SHORT",
			fmt.Sprintf("notice period of %d days is below the %d-day minimum",
				*rec.NoticePeriodDays, minNoticePeriodDays),
			riskShortNoticePoints)
	}

	if rec.MonthlyRent != nil && rec.SecurityDeposit != nil {
		depositCap := rec.MonthlyRent.Mul(decimal.NewFromInt(depositToRentCapMultipler))
		if rec.SecurityDeposit.GreaterThan(depositCap) {
			add("DEPOSIT-EXCESSIVE",
				fmt.Sprintf("security deposit %s exceeds %dx the monthly rent",
					rec.SecurityDeposit.StringFixed(2), depositToRentCapMultipler),
				riskExcessiveDepositPts)
		}
	}

	if term := rec.TermMonths(); term != nil && *term < minComfortableTermMonths {
		add("TERM-SHORT",
			fmt.Sprintf("lease term of %d months is below %d months", *term, minComfortableTermMonths),
			riskShortTermPoints)
	}

	if !rec.EscalationDisclosed() {
		add("ESCALATION-ABSENT", "no rent escalation clause is disclosed", riskNoEscalationPoints)
	}

	if rec.MonthlyRent == nil {
		add("RENT-UNKNOWN", "monthly rent could not be determined", riskUnknownRentPoints)
	}

	score = clampScore(score)
	level := riskLevel(score)

	return RiskAssessment{
		Score:           score,
		Level:           level,
		Factors:         factors,
		Recommendations: recommendations,
		Presentation:    PresentationFor(level),
	}
}

func riskLevel(score int) string {
	switch {
	case score <= 30:
		return RiskLevelLow
	case score <= 60:
		return RiskLevelMedium
	case score <= 80:
		return RiskLevelHigh
	default:
		return RiskLevelCritical
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
