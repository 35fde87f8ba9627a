package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/1234", PlatformAshby},
		{"https://JOBS.LEVER.CO/acme/1", PlatformLever},
		{"https://example.com/careers/123", PlatformUnknown},
		{"https://notgreenhouse.io/jobs/1", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestContentSelectors_PlatformFirstThenGeneric(t *testing.T) {
	selectors := ContentSelectors(PlatformGreenhouse)
	assert.Equal(t, ".job__description.body", selectors[0])
	assert.Contains(t, selectors, "main")

	assert.Equal(t, genericContent, ContentSelectors(PlatformUnknown))
}

func TestNoiseSelectors(t *testing.T) {
	common := NoiseSelectors(PlatformUnknown)
	assert.Contains(t, common, "form")
	assert.Contains(t, common, ".eeo-statement")

	lever := NoiseSelectors(PlatformLever)
	assert.Contains(t, lever, ".posting-apply")
	assert.Greater(t, len(lever), len(common))

	// appending platform noise must not mutate the shared list
	_ = NoiseSelectors(PlatformWorkday)
	assert.NotContains(t, NoiseSelectors(PlatformUnknown), "[data-automation-id='applyButton']")
}
