// Package fetch downloads job postings from the web and reduces them to the
// text of the posting itself.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/ats-ranker/internal/extract"
)

// DefaultTimeout bounds a single page download.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ATSRanker/1.0)"

// Page is a downloaded job posting.
type Page struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error describes a failed download.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a Fetcher.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string

	// Browser enables headless Chrome rendering when the plain download
	// yields too little text.
	Browser bool
}

// DefaultOptions returns plain HTTP fetching with the default timeout.
func DefaultOptions() Options {
	return Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher downloads job postings.
type Fetcher struct {
	opts   Options
	client *http.Client
	render func(ctx context.Context, url string, timeout time.Duration) (string, error)
	logger *zap.Logger
}

// New creates a Fetcher. A nil logger disables logging.
func New(opts Options, logger *zap.Logger) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		render: Render,
		logger: logger,
	}
}

// IsURL reports whether s looks like an http(s) URL rather than a file path.
func IsURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Page downloads rawURL. On a non-200 response the page is returned together
// with an error.
func (f *Fetcher) Page(ctx context.Context, rawURL string) (*Page, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	for key, value := range f.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, extract.MaxDocumentBytes+1))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read body", Cause: err}
	}
	if len(body) > extract.MaxDocumentBytes {
		return nil, &Error{URL: rawURL, Message: "page too large", Cause: extract.ErrTooLarge}
	}

	page := &Page{
		URL:         rawURL,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return page, &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return page, nil
}

// JobText downloads a job posting and returns its description text. Pages
// that come back nearly empty are rendered in a headless browser when
// Options.Browser is set.
func (f *Fetcher) JobText(ctx context.Context, rawURL string) (string, error) {
	page, err := f.Page(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if !strings.Contains(page.ContentType, "html") && page.ContentType != "" {
		f.logger.Debug("non-HTML job posting", zap.String("url", rawURL), zap.String("content_type", page.ContentType))
		return strings.TrimSpace(page.HTML), nil
	}

	platform := DetectPlatform(rawURL)
	text, err := MainText(page.HTML, platform)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to parse page", Cause: err}
	}
	f.logger.Debug("fetched job posting",
		zap.String("url", rawURL),
		zap.String("platform", string(platform)),
		zap.Int("chars", len(text)))

	if !f.opts.Browser || !TooShort(text) {
		return text, nil
	}

	f.logger.Info("page text too short, rendering in browser", zap.String("url", rawURL), zap.Int("chars", len(text)))
	html, err := f.render(ctx, rawURL, f.opts.Timeout)
	if err != nil {
		f.logger.Warn("browser rendering failed, keeping plain text", zap.String("url", rawURL), zap.Error(err))
		return text, nil
	}
	rendered, err := MainText(html, platform)
	if err != nil || len(rendered) <= len(text) {
		return text, nil
	}
	return rendered, nil
}

// MainText strips page chrome and returns the text of the posting body,
// using selectors tuned for the job board platform.
func MainText(html string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript").Remove()
	doc.Find(strings.Join(NoiseSelectors(platform), ", ")).Remove()

	content := doc.Find("body")
	for _, selector := range ContentSelectors(platform) {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}

	var lines []string
	for _, line := range strings.Split(content.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
