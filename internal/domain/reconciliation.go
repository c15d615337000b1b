package domain

import "errors"

var (
	// ErrNotReady is returned by the results endpoint while a session is still processing.
	ErrNotReady = errors.New("results not ready")
	// ErrSessionFailed is returned when the backend gave up on a session.
	ErrSessionFailed = errors.New("reconciliation failed")
)

// FileKind identifies which side of a reconciliation a file belongs to.
type FileKind string

const (
	FileSource FileKind = "source"
	FileLooker FileKind = "looker"
)

// Tolerances are the thresholds the backend applies for a client.
type Tolerances struct {
	Percentage float64 `json:"percentage"`
	Absolute   float64 `json:"absolute"`
}

// ClientInfo describes a client the reconciliation backend supports.
type ClientInfo struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Tolerances   Tolerances `json:"tolerances"`
	Capabilities []string   `json:"capabilities,omitempty"`
}

// DefaultClients is the client list used when the backend cannot be reached.
func DefaultClients() []ClientInfo {
	return []ClientInfo{
		{
			ID:          string(ClientOXXO),
			Name:        string(ClientOXXO),
			Description: "Conciliación de tickets OXXO",
			Status:      "✅ Funcional",
			Tolerances:  Tolerances{Percentage: 5.0, Absolute: 50.0},
		},
		{
			ID:          string(ClientKIOSKO),
			Name:        string(ClientKIOSKO),
			Description: "Conciliación de tickets KIOSKO",
			Status:      "✅ Funcional",
			Tolerances:  Tolerances{Percentage: 3.0, Absolute: 25.0},
		},
	}
}

// DateRange bounds a reconciliation, dates as YYYY-MM-DD.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ProcessRequest starts processing of an uploaded session.
type ProcessRequest struct {
	SessionID  string    `json:"session_id"`
	ClientType string    `json:"client_type"`
	DateRange  DateRange `json:"date_range"`
}

// Summary aggregates a reconciliation.
type Summary struct {
	TotalRecords       int     `json:"total_records"`
	ExactMatches       int     `json:"exact_matches"`
	WithinTolerance    int     `json:"within_tolerance"`
	MajorDifferences   int     `json:"major_differences"`
	MissingRecords     int     `json:"missing_records"`
	ReconciliationRate float64 `json:"reconciliation_rate"`
	TotalClientAmount  float64 `json:"total_client_amount"`
	TotalLookerAmount  float64 `json:"total_looker_amount"`
	TotalDifference    float64 `json:"total_difference"`
}

// Record is one reconciled row.
type Record struct {
	ID          string  `json:"id"`
	ClientValue float64 `json:"client_value"`
	LookerValue float64 `json:"looker_value"`
	Difference  float64 `json:"difference"`
	Status      string  `json:"status"`
	Category    string  `json:"category"`
	Fecha       string  `json:"fecha,omitempty"`
}

// Results is a completed reconciliation as returned by the backend.
type Results struct {
	SessionID string   `json:"session_id,omitempty"`
	Success   bool     `json:"success"`
	Status    string   `json:"status,omitempty"`
	Message   string   `json:"message,omitempty"`
	Summary   *Summary `json:"summary"`
	Records   []Record `json:"records"`

	ReportsGenerated []string `json:"reports_generated,omitempty"`
	ProcessingTime   float64  `json:"processing_time,omitempty"`
	Timestamp        string   `json:"timestamp,omitempty"`
}

// Complete reports whether the results carry a summary.
func (r *Results) Complete() bool {
	return r != nil && r.Success && r.Summary != nil
}

// Event types pushed on the progress feed.
const (
	EventProgress  = "progress"
	EventCompleted = "completed"
	EventError     = "error"
)

// ProgressEvent is one message of the progress feed.
type ProgressEvent struct {
	Type     string   `json:"type"`
	Step     string   `json:"step,omitempty"`
	Progress float64  `json:"progress,omitempty"`
	Message  string   `json:"message,omitempty"`
	Result   *Results `json:"result,omitempty"`
}

// Progress is what callers are told while a run is in flight.
type Progress struct {
	Step    string
	Percent float64
	Message string
}

// Record status codes.
const (
	RecordExactMatch      = "EXACT_MATCH"
	RecordMissingInLooker = "MISSING_IN_LOOKER"
	RecordMissingInOXXO   = "MISSING_IN_OXXO"
	RecordMissingInKIOSKO = "MISSING_IN_KIOSKO"
	RecordMinorDifference = "MINOR_DIFFERENCE"
	RecordMajorDifference = "MAJOR_DIFFERENCE"
	RecordWithinTolerance = "WITHIN_TOLERANCE"
)

// StatusLabel maps a record status to its display category.
func StatusLabel(status string) string {
	switch status {
	case RecordExactMatch:
		return "Conciliado"
	case RecordMissingInLooker, RecordMissingInOXXO, RecordMissingInKIOSKO:
		return "Faltante"
	case RecordMinorDifference, RecordMajorDifference:
		return "Diferencia"
	case RecordWithinTolerance:
		return "Tolerancia"
	}
	return status
}

// SessionFiles names the uploaded files of a session.
type SessionFiles struct {
	Source string `json:"source,omitempty"`
	Looker string `json:"looker,omitempty"`
}

// SessionEntry is one reconciliation kept in local history.
type SessionEntry struct {
	ID        string       `json:"id"`
	Client    string       `json:"client"`
	Date      string       `json:"date"`
	Status    string       `json:"status"`
	Summary   *Summary     `json:"summary"`
	Records   []Record     `json:"records"`
	Files     SessionFiles `json:"files"`
	DateRange DateRange    `json:"dateRange"`
}
