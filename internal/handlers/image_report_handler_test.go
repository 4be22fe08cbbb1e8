package handlers

import (
	"testing"

	"github.com/SAMJ447/inspection-proto/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageReportBackfillsOmittedFields(t *testing.T) {
	req := models.ImageReportData{
		ProjectName:      "Hudson Yards Tower B",
		InspectionDate:   "2026-08-12",
		Trade:            "welding",
		AreaInspected:    "Level 3 moment frames",
		ReferenceDrawing: "S-301",
		InspectorNotes:   "cold day, preheat checked",
	}

	data := parseImageReport(`{
		"overall_summary": "Welds at gridline C-2 conform.",
		"detailed_findings": [
			{"item": "Fillet weld C-2", "observation": "5mm fillet, full length", "status": "ACCEPTED"}
		],
		"conclusion": "All work accepted."
	}`, req)

	assert.Equal(t, "Hudson Yards Tower B", data.ProjectName)
	assert.Equal(t, "2026-08-12", data.InspectionDate)
	assert.Equal(t, "welding", data.Trade)
	assert.Equal(t, "Level 3 moment frames", data.AreaInspected)
	assert.Equal(t, "S-301", data.ReferenceDrawing)
	assert.Equal(t, "cold day, preheat checked", data.InspectorNotes)
	assert.Equal(t, "Welds at gridline C-2 conform.", data.OverallSummary)
	assert.Equal(t, "All work accepted.", data.Conclusion)
	require.Len(t, data.DetailedFindings, 1)
	assert.Equal(t, "ACCEPTED", data.DetailedFindings[0].Status)
}

func TestParseImageReportKeepsModelValues(t *testing.T) {
	req := models.ImageReportData{ProjectName: "Form Project", Trade: "welding"}

	data := parseImageReport(`{"project_name": "Model Project", "trade": "bolting"}`, req)

	assert.Equal(t, "Model Project", data.ProjectName)
	assert.Equal(t, "bolting", data.Trade)
	assert.NotNil(t, data.DetailedFindings)
}

func TestParseImageReportFencedJSON(t *testing.T) {
	req := models.ImageReportData{ProjectName: "P", InspectionDate: "2026-01-01"}

	data := parseImageReport("```json\n{\"overall_summary\": \"ok\"}\n```", req)

	assert.Equal(t, "ok", data.OverallSummary)
	assert.Equal(t, "P", data.ProjectName)
}

func TestParseImageReportProseFallback(t *testing.T) {
	req := models.ImageReportData{ProjectName: "P", InspectionDate: "2026-01-01", Trade: "detail"}

	data := parseImageReport("The bolted connections at B-4 were inspected and accepted.", req)

	assert.Equal(t, "The bolted connections at B-4 were inspected and accepted.", data.OverallSummary)
	assert.Equal(t, "P", data.ProjectName)
	assert.Equal(t, "detail", data.Trade)
	assert.NotNil(t, data.DetailedFindings)
	assert.Empty(t, data.DetailedFindings)
}
