// Package extraction pulls raw lease fields out of document text.
package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/krishnashakula/LeaseIQ/internal/domain/lease"
)

// FieldExtractor turns raw document text into the normalizer's field map.
type FieldExtractor interface {
	Extract(ctx context.Context, text string) (map[string]string, error)
}

// fieldPattern ties one output field to its candidate patterns, tried in
// order; the first capture wins.
type fieldPattern struct {
	field    string
	patterns []*regexp.Regexp
}

var patterns = []fieldPattern{
	{
		field: lease.FieldMonthlyRent,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)monthly\s+rent[^$\d]{0,40}(\$?[\d,]+(?:\.\d{1,2})?)`),
			regexp.MustCompile(`(?i)rent\s+(?:of|is|shall\s+be)[^$\d]{0,20}(\$?[\d,]+(?:\.\d{1,2})?)\s*(?:per\s+month|/\s*month|monthly)`),
			regexp.MustCompile(`(?i)(\$[\d,]+(?:\.\d{1,2})?)\s*per\s+month`),
		},
	},
	{
		field: lease.FieldSecurityDeposit,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)security\s+deposit[^$\d]{0,40}(\$?[\d,]+(?:\.\d{1,2})?)`),
			regexp.MustCompile(`(?i)deposit\s+(?:of|in\s+the\s+amount\s+of)[^$\d]{0,20}(\$?[\d,]+(?:\.\d{1,2})?)`),
		},
	},
	{
		field: lease.FieldPetFee,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)pet\s+(?:fee|rent|deposit)[^$\d]{0,40}(\$?[\d,]+(?:\.\d{1,2})?)`),
		},
	},
	{
		field: lease.FieldLateFee,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)late\s+(?:fee|charge|payment\s+fee)[^$\d]{0,40}(\$?[\d,]+(?:\.\d{1,2})?)`),
		},
	},
	{
		field: lease.FieldNoticePeriodDays,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(\d{1,3})\s*(?:days?|-day)\s+(?:written\s+)?notice`),
			regexp.MustCompile(`(?i)notice\s+(?:period\s+)?of\s+(\d{1,3})\s*days?`),
		},
	},
	{
		field: lease.FieldLeaseTermMonths,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:lease\s+)?term\s+of\s+(\d{1,2})\s*months?`),
			regexp.MustCompile(`(?i)(\d{1,2})[\s-]*months?\s+(?:lease\s+)?term`),
		},
	},
	{
		field: lease.FieldLeaseStart,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:commenc\w+|start\w*|begin\w*)\s+(?:on\s+|date[:\s]+)?(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4}|[A-Z][a-z]+\s+\d{1,2},\s+\d{4})`),
		},
	},
	{
		field: lease.FieldLeaseEnd,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:terminat\w+|end\w*|expir\w+)\s+(?:on\s+|date[:\s]+)?(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4}|[A-Z][a-z]+\s+\d{1,2},\s+\d{4})`),
		},
	},
}

// textPatterns run against the raw text: names and addresses keep their
// internal spacing, so the digit-gap cleanup must not touch them.
var textPatterns = []fieldPattern{
	{
		field: lease.FieldLandlordName,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b([A-Z][a-zA-Z'.-]+(?:\s+[A-Z][a-zA-Z'.-]+){0,3})\s*\(\s*(?:the\s+)?"?[Ll]andlord"?\s*\)`),
			regexp.MustCompile(`(?:LANDLORD|Landlord):[ \t]*([A-Z][a-zA-Z'.-]+(?:[ \t]+[A-Z][a-zA-Z'.-]+){0,3})`),
		},
	},
	{
		field: lease.FieldTenantName,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b([A-Z][a-zA-Z'.-]+(?:\s+[A-Z][a-zA-Z'.-]+){0,3})\s*\(\s*(?:the\s+)?"?[Tt]enant"?\s*\)`),
			regexp.MustCompile(`(?:TENANT|Tenant):[ \t]*([A-Z][a-zA-Z'.-]+(?:[ \t]+[A-Z][a-zA-Z'.-]+){0,3})`),
		},
	},
	{
		field: lease.FieldPropertyAddress,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:premises|property)\s+(?:located|situated)\s+at\s+(\d[^\n.]{4,80})`),
			regexp.MustCompile(`(?i)(?:premises|property)\s+at\s+(\d[^\n.]{4,80})`),
		},
	},
}

var escalationPattern = regexp.MustCompile(`(?i)(?:rent\s+)?(?:escalation|annual\s+increase|rent\s+(?:shall|will)\s+increase)`)

// digitGap joins digits separated by stray whitespace, a common artifact in
// OCR output from scanned leases ("$4 850.00").
var digitGap = regexp.MustCompile(`(\d)\s+(\d)`)

// RegexExtractor is the default extractor.  It is stateless and safe for
// concurrent use.
type RegexExtractor struct{}

var _ FieldExtractor = (*RegexExtractor)(nil)

// NewRegexExtractor returns the default pattern-table extractor.
func NewRegexExtractor() *RegexExtractor { return &RegexExtractor{} }

// Extract scans the text against every pattern table entry.  Fields with no
// match are simply absent from the result; downstream scoring treats them as
// unknown.  Extraction never fails on content, only on context cancellation.
func (e *RegexExtractor) Extract(ctx context.Context, text string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned := digitGap.ReplaceAllString(text, "$1$2")

	fields := make(map[string]string, len(patterns)+len(textPatterns)+1)
	for _, fp := range patterns {
		for _, re := range fp.patterns {
			if m := re.FindStringSubmatch(cleaned); m != nil {
				fields[fp.field] = strings.TrimSpace(m[1])
				break
			}
		}
	}
	for _, fp := range textPatterns {
		for _, re := range fp.patterns {
			if m := re.FindStringSubmatch(text); m != nil {
				fields[fp.field] = strings.TrimSpace(m[1])
				break
			}
		}
	}

	if escalationPattern.MatchString(text) {
		fields[lease.FieldEscalationClause] = "true"
	} else if strings.TrimSpace(text) != "" {
		fields[lease.FieldEscalationClause] = "false"
	}

	return fields, nil
}
