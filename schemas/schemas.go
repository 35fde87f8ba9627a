// Package schemas embeds the JSON Schemas that describe the service's structured artifacts.
package schemas

import _ "embed"

// CoachingReport is the JSON Schema every coaching report must satisfy.
//
//go:embed coaching_report.schema.json
var CoachingReport string
