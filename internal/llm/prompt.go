package llm

import (
	"fmt"
	"strings"
)

// ResponseSchema describes the JSON object a prompt asks the model to return.
type ResponseSchema struct {
	Name   string
	Fields []SchemaField
}

// SchemaField defines a single field in the model's output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "string[]"
	Description string
}

// Section is a labelled block of input text appended to a prompt.
type Section struct {
	Label string
	Body  string
}

// BuildJSONPrompt assembles instructions, the expected output shape and the
// input sections into a single prompt.
func BuildJSONPrompt(instructions string, schema ResponseSchema, sections ...Section) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(instructions))
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, typeHint))
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")

	for _, s := range sections {
		sb.WriteString("\n")
		sb.WriteString(s.Label)
		sb.WriteString(":\n---\n")
		sb.WriteString(s.Body)
		sb.WriteString("\n")
	}

	return sb.String()
}

// CoachingReportSchema is the output contract for coaching reports.
func CoachingReportSchema() ResponseSchema {
	return ResponseSchema{
		Name: "CoachingReport",
		Fields: []SchemaField{
			{Name: "summary", Type: "string", Description: "2-3 lines on the overall match and next steps"},
			{Name: "strengths", Type: "string[]", Description: "5-8 short bullets on what the candidate already matches"},
			{Name: "gaps", Type: "string[]", Description: "5-8 short bullets on clear gaps to fix or call out"},
			{Name: "action_bullets", Type: "string[]", Description: "6-10 concrete, measurable edits for the CV"},
			{Name: "revised_resume_bullets", Type: "string[]", Description: "4-6 tailored bullets ready to paste"},
			{Name: "tailored_summary", Type: "string", Description: "2-3 line professional summary aimed at this job"},
			{Name: "interview_questions", Type: "string[]", Description: "5-7 thoughtful questions to ask the interviewer"},
		},
	}
}
