package models

import (
	"github.com/SAMJ447/inspection-proto/internal/canvas"
)

// ChecklistItem is one structured finding in a generated report.
type ChecklistItem struct {
	Item   string `json:"item"`
	Status string `json:"status"` // ACCEPTED / REJECTED / OPEN
	Note   string `json:"note,omitempty"`
}

// ReportRequest is the payload for report generation: the current page's
// shape partition plus the OCR crop and its recognized text.
type ReportRequest struct {
	DrawingID         string            `json:"drawing_id"`
	TradeType         string            `json:"trade_type"`
	ProjectInfo       string            `json:"project_info"`
	Page              int               `json:"page"`
	Annotations       []canvas.Shape    `json:"annotations"`
	OCRCrop           *canvas.OCRRegion `json:"ocr_crop,omitempty"`
	OCRText           string            `json:"ocr_text,omitempty"`
	ChecklistTemplate string            `json:"checklist_template,omitempty"`
}

// ReportResponse mirrors the report collaborator contract.
type ReportResponse struct {
	ReportText    string          `json:"report_text"`
	ChecklistText string          `json:"checklist_text"`
	JSONItems     []ChecklistItem `json:"json_items"`
}
