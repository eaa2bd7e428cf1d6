package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/krishnashakula/LeaseIQ/internal/domain/lease"
)

// Compliance scoring policies for rules whose inputs are absent.
const (
	PolicyExclude  = "exclude"
	PolicyPenalize = "penalize"
)

// ruleOutcome distinguishes the three states a rule evaluation can land in.
type ruleOutcome int

const (
	rulePassed ruleOutcome = iota
	ruleViolated
	ruleUnevaluable
)

// complianceRule is one ordered compliance check.  evaluate returns the
// outcome plus a human-readable detail for violations and unevaluable rules.
// remediation is the fixed corrective step emitted when the rule is violated.
type complianceRule struct {
	id          string
	deduction   int
	severity    string
	remediation string
	evaluate    func(*lease.Record) (ruleOutcome, string)
}

var maxPetFee = decimal.NewFromInt(100)

// complianceRules run in this order; report violations preserve it.
var complianceRules = []complianceRule{
	{
		id:          "SEC-DEP-CAP",
		deduction:   25,
		severity:    SeverityHigh,
		remediation: "Reduce the security deposit to no more than 2x the monthly rent",
		evaluate: func(r *lease.Record) (ruleOutcome, string) {
			if r.MonthlyRent == nil || r.SecurityDeposit == nil {
				return ruleUnevaluable, "rent or deposit is unknown"
			}
			depositCap := r.MonthlyRent.Mul(decimal.NewFromInt(2))
			if r.SecurityDeposit.GreaterThan(depositCap) {
				return ruleViolated, fmt.Sprintf(
					"security deposit %s exceeds the legal cap of 2x monthly rent (%s)",
					r.SecurityDeposit.StringFixed(2), depositCap.StringFixed(2))
			}
			return rulePassed, ""
		},
	},
	{
		id:          "NOTICE-MIN",
		deduction:   20,
		severity:    SeverityHigh,
		remediation: "Extend the termination notice period to at least 30 days",
		evaluate: func(r *lease.Record) (ruleOutcome, string) {
			if r.NoticePeriodDays == nil {
				return ruleUnevaluable, "notice period is unknown"
			}
			if *r.NoticePeriodDays < minNoticePeriodDays {
				return ruleViolated, fmt.Sprintf(
					"notice period of %d days is below the required %d days",
					*r.NoticePeriodDays, minNoticePeriodDays)
			}
			return rulePassed, ""
		},
	},
	{
		id:          "TERM-DATES",
		deduction:   15,
		severity:    SeverityMedium,
		remediation: "Correct the lease start and end dates so the term is well defined",
		evaluate: func(r *lease.Record) (ruleOutcome, string) {
			if r.LeaseStart == nil && r.LeaseEnd == nil && r.TermMonthsStated == nil {
				return ruleUnevaluable, "no term information is present"
			}
			if r.LeaseStart != nil && r.LeaseEnd != nil && !r.LeaseEnd.After(*r.LeaseStart) {
				return ruleViolated, "lease end date does not follow the start date"
			}
			if r.TermMonths() == nil {
				return ruleViolated, "lease term cannot be established from the document"
			}
			return rulePassed, ""
		},
	},
	{
		id:          "PET-FEE-CAP",
		deduction:   10,
		severity:    SeverityLow,
		remediation: "Lower the monthly pet fee to the $100 cap or below",
		evaluate: func(r *lease.Record) (ruleOutcome, string) {
			if r.PetFee == nil {
				return ruleUnevaluable, "pet fee is unknown"
			}
			if r.PetFee.GreaterThan(maxPetFee) {
				return ruleViolated, fmt.Sprintf(
					"pet fee %s exceeds the %s monthly cap",
					r.PetFee.StringFixed(2), maxPetFee.StringFixed(2))
			}
			return rulePassed, ""
		},
	},
	{
		id:          "ESCALATION-DISCLOSED",
		deduction:   5,
		severity:    SeverityLow,
		remediation: "Disclose the rent escalation terms explicitly in the lease",
		evaluate: func(r *lease.Record) (ruleOutcome, string) {
			// Silence counts as non-disclosure; this rule always evaluates.
			if !r.EscalationDisclosed() {
				return ruleViolated, "rent escalation terms are not disclosed"
			}
			return rulePassed, ""
		},
	},
}

// ScoreCompliance runs every rule in order, starting from a perfect score and
// deducting per violation.  Unevaluable rules land in a separate bucket; the
// policy decides whether they also cost points (half the rule's deduction
// under PolicyPenalize).  The score never drops below zero.
func ScoreCompliance(rec *lease.Record, policy string) ComplianceReport {
	if policy != PolicyPenalize {
		policy = PolicyExclude
	}

	score := 100
	violations := make([]ComplianceViolation, 0, len(complianceRules))
	remediation := make([]string, 0, len(complianceRules))
	unevaluated := make([]UnevaluatedRule, 0, len(complianceRules))

	for _, rule := range complianceRules {
		outcome, detail := rule.evaluate(rec)
		switch outcome {
		case ruleViolated:
			violations = append(violations, ComplianceViolation{
				RuleID:      rule.id,
				Description: detail,
				Severity:    rule.severity,
				Deduction:   rule.deduction,
			})
			remediation = append(remediation, rule.remediation)
			score -= rule.deduction
		case ruleUnevaluable:
			unevaluated = append(unevaluated, UnevaluatedRule{RuleID: rule.id, Reason: detail})
			if policy == PolicyPenalize {
				score -= rule.deduction / 2
			}
		}
	}

	if score < 0 {
		score = 0
	}
	status := complianceStatus(score)

	return ComplianceReport{
		Score:            score,
		Status:           status,
		Violations:       violations,
		RemediationSteps: remediation,
		Unevaluated:      unevaluated,
		Policy:           policy,
		Presentation:     PresentationFor(status),
	}
}

func complianceStatus(score int) string {
	switch {
	case score >= 90:
		return ComplianceFullyCompliant
	case score >= 80:
		return ComplianceMostlyCompliant
	case score >= 61:
		return ComplianceNeedsAttention
	default:
		return ComplianceNonCompliant
	}
}
