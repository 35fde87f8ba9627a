package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoachingReportSchema_ValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(CoachingReport), &v))

	assert.Equal(t, "CoachingReport", v["title"])
	required, ok := v["required"].([]any)
	require.True(t, ok)
	assert.Len(t, required, 7)
}
