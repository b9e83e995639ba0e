package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caspian-labs/roomcraft/pkg/constraints"
)

func TestHandleLayoutJobCompletes(t *testing.T) {
	rec := LayoutJobRecord{
		ID:        "job-1",
		RoomID:    "room-1",
		FloorPlan: testRoom(),
		Catalog:   testCatalog(),
	}
	result := HandleLayoutJob(context.Background(), rec, fastConfig())
	require.Equal(t, "job-1", result.ID)
	require.Equal(t, StatusCompleted, result.Status)
	require.Empty(t, result.Error)
}

func TestHandleLayoutJobInvalidRoomFails(t *testing.T) {
	rec := LayoutJobRecord{ID: "job-2", Catalog: testCatalog()}
	result := HandleLayoutJob(context.Background(), rec, fastConfig())
	require.Equal(t, StatusFailed, result.Status)
	require.NotEmpty(t, result.Error)
}

func TestHandleValidationJobCompletes(t *testing.T) {
	layoutResults, err := RunLayoutJob(context.Background(), testRoom(), testCatalog(), nil, nil, constraints.Defaults(), fastConfig())
	require.NoError(t, err)
	require.NotEmpty(t, layoutResults)

	rec := ValidationJobRecord{
		ID:        "vjob-1",
		LayoutID:  layoutResults[0].Layout.ID,
		FloorPlan: testRoom(),
		Layout:    layoutResults[0].Layout,
	}
	result := HandleValidationJob(context.Background(), rec)
	require.Equal(t, "vjob-1", result.ID)
	require.Equal(t, StatusCompleted, result.Status)
	require.NotNil(t, result.Report)
}
