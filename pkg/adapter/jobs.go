package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/layout"
)

// LayoutJobRecord is the wire shape of a `layout.jobs` message:
// `{ id, room_id, floor_plan, catalog, constraints, style_prefs:[str], budget_cents:int? }`.
type LayoutJobRecord struct {
	ID          string                `json:"id"`
	RoomID      string                `json:"room_id"`
	FloorPlan   catalog.Room          `json:"floor_plan"`
	Catalog     []catalog.CatalogItem `json:"catalog"`
	Constraints layout.ConstraintsCfg `json:"constraints"`
	StylePrefs  []string              `json:"style_prefs"`
	BudgetCents *int                  `json:"budget_cents,omitempty"`
}

// ValidationJobRecord is the wire shape of a `validation.jobs` message:
// `{ id, layout_id, room_id, floor_plan, layout, constraints }`.
type ValidationJobRecord struct {
	ID          string                `json:"id"`
	LayoutID    string                `json:"layout_id"`
	RoomID      string                `json:"room_id"`
	FloorPlan   catalog.Room          `json:"floor_plan"`
	Layout      layout.Layout         `json:"layout"`
	Constraints layout.ConstraintsCfg `json:"constraints"`
}

// ResultStatus is the fixed two-value status enum published on
// `{topic}.results` alongside the job's id.
type ResultStatus string

const (
	StatusCompleted ResultStatus = "completed"
	StatusFailed    ResultStatus = "failed"
)

// LayoutResultRecord is published on `layout.jobs.results`. ErrorKind
// carries the failure classification (see pkg/roomerr) so failed records
// stay diagnosable without string-matching Error.
type LayoutResultRecord struct {
	ID        string          `json:"id"`
	Status    ResultStatus    `json:"status"`
	Layouts   []layout.Layout `json:"layouts,omitempty"`
	Error     string          `json:"error,omitempty"`
	ErrorKind string          `json:"error_kind,omitempty"`
}

// ValidationResultRecord is published on `validation.jobs.results`.
type ValidationResultRecord struct {
	ID        string       `json:"id"`
	Status    ResultStatus `json:"status"`
	Report    interface{}  `json:"report,omitempty"`
	Error     string       `json:"error,omitempty"`
	ErrorKind string       `json:"error_kind,omitempty"`
}

// ProgressRecord is an append-only progress update keyed by job id
// (progress in [0,1] with a message and timestamp, monotonically
// non-decreasing within a job).
type ProgressRecord struct {
	JobID     string  `json:"job_id"`
	Progress  float64 `json:"progress"`
	Message   string  `json:"message"`
	Timestamp int64   `json:"timestamp"`
}

// ValidationProgressCheckpoints is the fixed cadence a validation job's
// progress stream is emitted at.
var ValidationProgressCheckpoints = []float64{0.1, 0.2, 0.4, 0.6, 0.8, 0.9, 1.0}

func decodeLayoutJob(payload []byte) (LayoutJobRecord, error) {
	var rec LayoutJobRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return LayoutJobRecord{}, fmt.Errorf("decoding layout job: %w", err)
	}
	return rec, nil
}

func decodeValidationJob(payload []byte) (ValidationJobRecord, error) {
	var rec ValidationJobRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return ValidationJobRecord{}, fmt.Errorf("decoding validation job: %w", err)
	}
	return rec, nil
}

func stylePrefTags(raw []string) []catalog.StyleTag {
	tags := make([]catalog.StyleTag, len(raw))
	for i, s := range raw {
		tags[i] = catalog.StyleTag(s)
	}
	return tags
}
