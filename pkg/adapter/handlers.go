package adapter

import (
	"context"

	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/caspian-labs/roomcraft/pkg/roomerr"
	"github.com/caspian-labs/roomcraft/pkg/validator"
)

// HandleLayoutJob runs one `layout.jobs` record through the pipeline and
// returns the record to publish on `layout.jobs.results`. It
// never returns an error itself; every failure mode is folded into the
// result record's Status/Error fields so the MQTT transport layer has one
// uniform thing to publish regardless of outcome.
func HandleLayoutJob(ctx context.Context, rec LayoutJobRecord, cfg layout.Config) LayoutResultRecord {
	cons := rec.Constraints.ToConstraints()
	results, err := RunLayoutJob(ctx, rec.FloorPlan, rec.Catalog, stylePrefTags(rec.StylePrefs), rec.BudgetCents, cons, cfg)
	if err != nil {
		return LayoutResultRecord{ID: rec.ID, Status: StatusFailed, Error: err.Error(), ErrorKind: roomerr.KindOf(err).String()}
	}

	layouts := make([]layout.Layout, len(results))
	for i, r := range results {
		layouts[i] = r.Layout
	}
	return LayoutResultRecord{ID: rec.ID, Status: StatusCompleted, Layouts: layouts}
}

// HandleValidationJob runs one `validation.jobs` record's layout through
// the independent geometry validator and returns the record to publish on
// `validation.jobs.results`.
func HandleValidationJob(ctx context.Context, rec ValidationJobRecord) ValidationResultRecord {
	cons := rec.Constraints.ToConstraints()
	report, err := validator.Validate(ctx, rec.FloorPlan, rec.Layout.Placements, cons)
	if err != nil {
		return ValidationResultRecord{ID: rec.ID, Status: StatusFailed, Error: err.Error(), ErrorKind: roomerr.KindOf(err).String()}
	}
	return ValidationResultRecord{ID: rec.ID, Status: StatusCompleted, Report: report}
}
