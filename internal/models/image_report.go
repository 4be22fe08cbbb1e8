package models

// ImageReportFinding is one row of the detailed-findings table in an
// image-based report.
type ImageReportFinding struct {
	Item            string `json:"item"`
	Observation     string `json:"observation"`
	CodeOrDetailRef string `json:"code_or_detail_ref"`
	Status          string `json:"status"`
	Remarks         string `json:"remarks"`
}

// ImageReportData is the structured report generated from site photos, and
// the payload the docx export consumes. Field names mirror the placeholders
// in the trade report templates.
type ImageReportData struct {
	ProjectName                  string               `json:"project_name"`
	InspectionDate               string               `json:"inspection_date"`
	Trade                        string               `json:"trade"`
	AreaInspected                string               `json:"area_inspected"`
	ReferenceDrawing             string               `json:"reference_drawing"`
	ReferenceDetail              string               `json:"reference_detail"`
	ReferenceDetails             string               `json:"reference_details"`
	OverallSummary               string               `json:"overall_summary"`
	DetailedFindings             []ImageReportFinding `json:"detailed_findings"`
	Conclusion                   string               `json:"conclusion"`
	InspectorNotes               string               `json:"inspector_notes"`
	PreviousDeficienciesResolved string               `json:"previous_deficiencies_resolved"`
}
