package repo

import (
	"encoding/json"
	"testing"

	"github.com/SAMJ447/inspection-proto/internal/canvas"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotationRowsKeepCreationOrder(t *testing.T) {
	drawingID := uuid.New()
	shapes := []canvas.Shape{
		{ID: uuid.NewString(), Type: canvas.KindRect, Page: 2, X: 1},
		{ID: uuid.NewString(), Type: canvas.KindArrow, Page: 2, X: 2},
		{ID: uuid.NewString(), Type: canvas.KindCheck, Page: 2, X: 3},
	}

	rows, err := annotationRows(drawingID, 2, shapes)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// the slice index is the order key, independent of insert timestamps
	for i, row := range rows {
		assert.Equal(t, i, row.Seq)
		assert.Equal(t, drawingID, row.DrawingID)
		assert.Equal(t, 2, row.Page)
		assert.Equal(t, shapes[i].ID, row.UUID.String())

		var back canvas.Shape
		require.NoError(t, json.Unmarshal(row.Data, &back))
		assert.Equal(t, shapes[i].X, back.X)
	}
}

func TestAnnotationRowsNonUUIDClientIDs(t *testing.T) {
	rows, err := annotationRows(uuid.New(), 1, []canvas.Shape{
		{ID: "shape-1", Type: canvas.KindRect, Page: 1},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// a fresh row uuid is minted, the wire id inside Data is untouched
	assert.NotEqual(t, uuid.Nil, rows[0].UUID)
	var back canvas.Shape
	require.NoError(t, json.Unmarshal(rows[0].Data, &back))
	assert.Equal(t, "shape-1", back.ID)
}
