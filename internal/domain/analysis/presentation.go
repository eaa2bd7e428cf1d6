package analysis

// presentationTable is the single source of display hints per level or
// status.  Handlers and the CLI must not restate these mappings.
var presentationTable = map[string]Presentation{
	RiskLevelLow:      {Color: "#2e7d32", Badge: "Low Risk"},
	RiskLevelMedium:   {Color: "#f9a825", Badge: "Medium Risk"},
	RiskLevelHigh:     {Color: "#ef6c00", Badge: "High Risk"},
	RiskLevelCritical: {Color: "#c62828", Badge: "Critical Risk"},

	ComplianceFullyCompliant:  {Color: "#2e7d32", Badge: "Fully Compliant"},
	ComplianceMostlyCompliant: {Color: "#9e9d24", Badge: "Mostly Compliant"},
	ComplianceNeedsAttention:  {Color: "#ef6c00", Badge: "Needs Attention"},
	ComplianceNonCompliant:    {Color: "#c62828", Badge: "Non-Compliant"},
}

// PresentationFor returns the display hints for a risk level or compliance
// status.  Unknown inputs get a neutral gray so a renderer never panics.
func PresentationFor(levelOrStatus string) Presentation {
	if p, ok := presentationTable[levelOrStatus]; ok {
		return p
	}
	return Presentation{Color: "#757575", Badge: "Unknown"}
}
