// Package kafka carries the analysis pipeline events between the API server
// and the workers.
package kafka

// Event types.
const (
	EventDocumentUploaded  = "document.uploaded"
	EventAnalysisCompleted = "analysis.completed"
)

// DocumentUploadedEvent announces a freshly stored document that awaits
// analysis.  The worker picks it up, extracts fields and runs the engine.
type DocumentUploadedEvent struct {
	EventType  string `json:"event_type"`
	DocumentID string `json:"document_id"`
	JobID      string `json:"job_id"`
	ObjectKey  string `json:"object_key"`
	Filename   string `json:"filename"`
	SizeBytes  int64  `json:"size_bytes"`
}

// AnalysisCompletedEvent announces a persisted report.
type AnalysisCompletedEvent struct {
	EventType  string `json:"event_type"`
	JobID      string `json:"job_id"`
	DocumentID string `json:"document_id"`
	RiskLevel  string `json:"risk_level"`
	Succeeded  bool   `json:"succeeded"`
	Error      string `json:"error,omitempty"`
}
