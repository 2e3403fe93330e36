// Package webclip fetches a single web page and turns it into note text.
package webclip

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

type Config struct {
	RateLimit float64 // requests per second
	Timeout   time.Duration
}

type Clipper struct {
	config  Config
	client  *http.Client
	limiter *rate.Limiter
}

// Clip is a fetched page reduced to note material.
type Clip struct {
	URL     string
	Title   string
	Content string
}

func NewWithConfig(config Config) *Clipper {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 2
	}

	return &Clipper{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}
}

// Fetch downloads one page and extracts its title and main content.
func (c *Clipper) Fetch(ctx context.Context, rawURL string) (Clip, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Clip{}, fmt.Errorf("invalid URL: %w", err)
	}
	if !parsed.IsAbs() {
		rawURL = "https://" + rawURL
		parsed, err = url.Parse(rawURL)
		if err != nil {
			return Clip{}, fmt.Errorf("invalid URL: %w", err)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Clip{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Clip{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Clip{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Clip{}, fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, rawURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Clip{}, err
	}

	title := strings.TrimSpace(doc.Find("title").Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = parsed.Host
	}

	return Clip{
		URL:     rawURL,
		Title:   title,
		Content: extractMainContent(doc),
	}, nil
}

func extractMainContent(doc *goquery.Document) string {
	// Try to find a main content area before falling back to the body.
	selectors := []string{
		"main",
		"article",
		".content",
		"#content",
	}

	var content string
	for _, selector := range selectors {
		if selected := doc.Find(selector); selected.Length() > 0 {
			content = selected.Text()
			break
		}
	}

	if content == "" {
		content = doc.Find("body").Text()
	}

	return cleanContent(content)
}

func cleanContent(content string) string {
	content = strings.Join(strings.Fields(content), " ")

	noisePatterns := []string{
		"Cookie Policy",
		"Accept Cookies",
		"Privacy Policy",
		"Terms of Service",
	}
	for _, pattern := range noisePatterns {
		content = strings.ReplaceAll(content, pattern, "")
	}

	return strings.TrimSpace(content)
}

// Markdown renders the clip as a note body with a source line up top.
func (c Clip) Markdown() string {
	return fmt.Sprintf("# %s\n\nSource: %s\n\n%s\n", c.Title, c.URL, c.Content)
}
