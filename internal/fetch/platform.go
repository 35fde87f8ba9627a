package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board whose page layout is known.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

type platformLayout struct {
	hosts   []string
	content []string
	noise   []string
}

var layouts = map[Platform]platformLayout{
	PlatformGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".posting-apply", ".lever-application-form"},
	},
	PlatformWorkday: {
		hosts:   []string{"myworkdayjobs.com", "workday.com"},
		content: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	PlatformAshby: {
		hosts:   []string{"ashbyhq.com"},
		content: []string{"[class*='descriptionText']", "main"},
		noise:   []string{"[class*='applicationForm']"},
	},
}

// genericContent is used for unknown boards and company career pages.
var genericContent = []string{
	".job-description",
	"#job-description",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	"#content",
	".content",
}

// commonNoise is removed on every platform: application forms, EEO
// boilerplate, share widgets, consent banners and sidebars.
var commonNoise = []string{
	"form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".eeo-section",
	".voluntary-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-banner",
	".cookie-consent",
	".sidebar",
}

// DetectPlatform identifies the job board hosting rawURL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for platform, layout := range layouts {
		for _, suffix := range layout.hosts {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return platform
			}
		}
	}
	return PlatformUnknown
}

// ContentSelectors lists the selectors tried, in order, for the posting body.
// Known platforms fall back to the generic list.
func ContentSelectors(platform Platform) []string {
	layout, ok := layouts[platform]
	if !ok {
		return genericContent
	}
	selectors := make([]string, 0, len(layout.content)+len(genericContent))
	selectors = append(selectors, layout.content...)
	return append(selectors, genericContent...)
}

// NoiseSelectors lists the elements removed before extraction.
func NoiseSelectors(platform Platform) []string {
	selectors := make([]string, 0, len(commonNoise)+4)
	selectors = append(selectors, commonNoise...)
	return append(selectors, layouts[platform].noise...)
}
