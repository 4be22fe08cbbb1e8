package models

import (
	"time"
)

// TradeConfig holds the prompt and checklist template for one inspection
// trade. Saved rows override the compiled-in defaults.
type TradeConfig struct {
	Trade             string    `gorm:"primarykey" json:"trade"`
	SystemPrompt      string    `json:"system_prompt"`
	ChecklistTemplate string    `json:"checklist_template"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultTradeConfigs are the built-in trade templates; unknown trades fall
// back to welding.
var DefaultTradeConfigs = map[string]TradeConfig{
	"welding": {
		Trade: "welding",
		SystemPrompt: "You are a NYC special inspector for WELDING. " +
			"Write concise, professional inspection reports that reference AWS D1.1, " +
			"NYC DOB special inspection style, and project drawings by gridline and detail. " +
			"Focus on what was inspected, acceptance/rejection, and any deficiencies.",
		ChecklistTemplate: "- Verify weld sizes and locations match the referenced detail.\n" +
			"- Confirm welds are continuous where required and free of visible defects " +
			"(cracks, porosity, undercut, slag inclusions).\n" +
			"- Confirm base metal and electrodes match project specifications.\n" +
			"- Note any deficiencies and required corrective actions.",
	},
	"bolting": {
		Trade: "bolting",
		SystemPrompt: "You are a NYC special inspector for STRUCTURAL STEEL BOLTING (HSB). " +
			"Write professional reports referencing RCSC and NYC DOB style. " +
			"Focus on bolt type, size, installation method (snug-tight / pretensioned), " +
			"and connection locations by gridline and detail.",
		ChecklistTemplate: "- Verify bolt type, diameter, and grade match the referenced detail.\n" +
			"- Confirm installation method (snug-tight / pretensioned) and inspection procedure.\n" +
			"- Check that all required bolts are installed and properly tensioned.\n" +
			"- Note any missing bolts, improper installation, or corrective actions.",
	},
	"detail": {
		Trade: "detail",
		SystemPrompt: "You are a NYC special inspector reviewing steel DETAILING / LAYOUT " +
			"against structural drawings. Verify member sizes, locations by grid, " +
			"support conditions, and connection details.",
		ChecklistTemplate: "- Verify member sizes (W-, L-, PL- sections) match drawings.\n" +
			"- Confirm locations by gridline, level, and orientation.\n" +
			"- Check that clip angles, plates, and support details match referenced details.\n" +
			"- Note any deviations or required corrections.",
	},
}
