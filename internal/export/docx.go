package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/SAMJ447/inspection-proto/internal/models"

	"github.com/nguyenthenguyen/docx"
)

// findings-table placeholders, expected together in one template row
const (
	phItem        = "{{ITEM}}"
	phObservation = "{{OBSERVATION}}"
	phCodeRef     = "{{CODE_OR_DETAIL_REF}}"
	phStatus      = "{{STATUS}}"
	phRemarks     = "{{REMARKS}}"
)

// FillReportTemplate loads a docx report template and substitutes the
// report's fields for its placeholders. Simple placeholders are replaced
// wherever they occur; the findings table row holding {{ITEM}} is repeated
// once per detailed finding.
func FillReportTemplate(templatePath string, report models.ImageReportData) ([]byte, error) {
	r, err := docx.ReadDocxFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("read docx template: %w", err)
	}
	defer r.Close()

	doc := r.Editable()
	doc.SetContent(expandFindingsRows(doc.GetContent(), report.DetailedFindings))
	for key, value := range reportPlaceholders(report) {
		if err := doc.Replace(key, value, -1); err != nil {
			return nil, fmt.Errorf("replace %s: %w", key, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

// reportPlaceholders maps template placeholders to the report's scalar
// fields, mirroring the placeholder set the trade templates are authored
// with.
func reportPlaceholders(report models.ImageReportData) map[string]string {
	return map[string]string{
		"{{PROJECT_NAME}}":                   report.ProjectName,
		"{{INSPECTION_DATE}}":                report.InspectionDate,
		"{{TRADE}}":                          report.Trade,
		"{{AREA_INSPECTED}}":                 report.AreaInspected,
		"{{REFERENCE_DRAWING}}":              report.ReferenceDrawing,
		"{{REFERENCE_DETAIL}}":               report.ReferenceDetail,
		"{{REFERENCE_DETAILS}}":              report.ReferenceDetails,
		"{{OVERALL_SUMMARY}}":                report.OverallSummary,
		"{{CONCLUSION}}":                     report.Conclusion,
		"{{INSPECTOR_NOTES}}":                report.InspectorNotes,
		"{{PREVIOUS_DEFICIENCIES_RESOLVED}}": report.PreviousDeficienciesResolved,
	}
}

// expandFindingsRows repeats the table row containing the findings
// placeholders once per finding, filling each copy. With no findings, or no
// findings row in the template, the document XML is returned unchanged.
func expandFindingsRows(content string, findings []models.ImageReportFinding) string {
	if len(findings) == 0 {
		return content
	}

	anchor := strings.Index(content, phItem)
	if anchor < 0 {
		return content
	}
	rowStart := strings.LastIndex(content[:anchor], "<w:tr")
	if rowStart < 0 {
		return content
	}
	rowEnd := strings.Index(content[anchor:], "</w:tr>")
	if rowEnd < 0 {
		return content
	}
	rowEnd += anchor + len("</w:tr>")

	template := content[rowStart:rowEnd]
	var rows strings.Builder
	for _, f := range findings {
		row := template
		row = strings.ReplaceAll(row, phItem, escapeXML(f.Item))
		row = strings.ReplaceAll(row, phObservation, escapeXML(f.Observation))
		row = strings.ReplaceAll(row, phCodeRef, escapeXML(f.CodeOrDetailRef))
		row = strings.ReplaceAll(row, phStatus, escapeXML(f.Status))
		row = strings.ReplaceAll(row, phRemarks, escapeXML(f.Remarks))
		rows.WriteString(row)
	}

	return content[:rowStart] + rows.String() + content[rowEnd:]
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
