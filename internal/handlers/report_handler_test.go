package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportResponsePlainJSON(t *testing.T) {
	resp := parseReportResponse(`{
		"report_text": "Welds at gridline B-4 conform.",
		"checklist_text": "- Fillet size: OK",
		"json_items": [{"item": "Fillet size", "status": "ACCEPTED"}]
	}`)

	assert.Equal(t, "Welds at gridline B-4 conform.", resp.ReportText)
	assert.Equal(t, "- Fillet size: OK", resp.ChecklistText)
	require.Len(t, resp.JSONItems, 1)
	assert.Equal(t, "ACCEPTED", resp.JSONItems[0].Status)
}

func TestParseReportResponseFencedJSON(t *testing.T) {
	resp := parseReportResponse("```json\n{\"report_text\": \"ok\", \"checklist_text\": \"\", \"json_items\": []}\n```")
	assert.Equal(t, "ok", resp.ReportText)
	assert.NotNil(t, resp.JSONItems)
}

func TestParseReportResponseProseFallback(t *testing.T) {
	resp := parseReportResponse("The inspection found no defects.")
	assert.Equal(t, "The inspection found no defects.", resp.ReportText)
	assert.Empty(t, resp.ChecklistText)
	assert.NotNil(t, resp.JSONItems)
	assert.Empty(t, resp.JSONItems)
}

func TestParseReportResponseMissingItems(t *testing.T) {
	resp := parseReportResponse(`{"report_text": "x", "checklist_text": "y"}`)
	assert.NotNil(t, resp.JSONItems)
}
