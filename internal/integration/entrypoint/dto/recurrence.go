package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

// CatchUpResponse reports a recurrence catch-up run.
type CatchUpResponse struct {
	RunID           string    `json:"run_id,omitempty"`
	Skipped         bool      `json:"skipped"`
	Templates       int       `json:"templates"`
	Posted          int       `json:"posted"`
	AlreadyPresent  int       `json:"already_present"`
	Failed          int       `json:"failed"`
	CursorsAdvanced int       `json:"cursors_advanced"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}

// BackfillResponse reports a backfill retry pass.
type BackfillResponse struct {
	Skipped   bool `json:"skipped"`
	Processed int  `json:"processed"`
	Resolved  int  `json:"resolved"`
	Retrying  int  `json:"retrying"`
	Failed    int  `json:"failed"`
}

// ToCatchUpResponse converts a catch-up summary to its response.
func ToCatchUpResponse(summary *entity.CatchUpSummary) CatchUpResponse {
	response := CatchUpResponse{
		Skipped:         summary.Skipped,
		Templates:       summary.Templates,
		Posted:          summary.Posted,
		AlreadyPresent:  summary.AlreadyPresent,
		Failed:          summary.Failed,
		CursorsAdvanced: summary.CursorsAdvanced,
		StartedAt:       summary.StartedAt,
		FinishedAt:      summary.FinishedAt,
	}
	if summary.RunID != uuid.Nil {
		response.RunID = summary.RunID.String()
	}
	return response
}

// ToBackfillResponse converts a backfill summary to its response.
func ToBackfillResponse(summary *entity.BackfillSummary) BackfillResponse {
	return BackfillResponse{
		Skipped:   summary.Skipped,
		Processed: summary.Processed,
		Resolved:  summary.Resolved,
		Retrying:  summary.Retrying,
		Failed:    summary.Failed,
	}
}
