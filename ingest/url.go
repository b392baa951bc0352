package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"jobshield/errors"
)

const (
	fetchTimeout = 15 * time.Second
	maxPageBytes = 2 << 20
	maxBodyChars = 10_000
	minBodyChars = 50

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// companySelectors is tried in order; the first match wins.
var companySelectors = []string{
	"[data-company]",
	".company-name",
	".topcard__org-name-link",
	"[itemprop='hiringOrganization']",
	".JobInfoHeader-subtitle",
}

// ScrapedPosting is the plain-text form of a job page.
type ScrapedPosting struct {
	URL     string
	Title   string
	Company string
	Text    string
}

type URLAdapter struct {
	client *http.Client
	log    *slog.Logger
}

func NewURLAdapter(log *slog.Logger) *URLAdapter {
	return &URLAdapter{
		client: &http.Client{Timeout: fetchTimeout},
		log:    log,
	}
}

var multiSpaceRe = regexp.MustCompile(`[ \t]{2,}`)
var multiNewlineRe = regexp.MustCompile(`\n{3,}`)

// Fetch downloads a job posting page and extracts its text content.
// Network or HTTP failure surfaces as a fetch error; an extracted body
// under minBodyChars surfaces as ContentTooShort and nothing downstream
// runs for the request.
func (a *URLAdapter) Fetch(ctx context.Context, rawURL string) (ScrapedPosting, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return ScrapedPosting{}, errors.Input(errors.StageIngestURL, fmt.Errorf("url is required"))
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ScrapedPosting{}, errors.Input(errors.StageIngestURL, fmt.Errorf("invalid url: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return ScrapedPosting{}, errors.Fetch(errors.StageIngestURL, fmt.Errorf("could not fetch url: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return ScrapedPosting{}, errors.Fetch(errors.StageIngestURL,
			fmt.Errorf("could not fetch url: status %s", resp.Status))
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxPageBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return ScrapedPosting{}, errors.Fetch(errors.StageIngestURL, fmt.Errorf("decoding page: %w", err))
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return ScrapedPosting{}, errors.Fetch(errors.StageIngestURL, fmt.Errorf("parsing page: %w", err))
	}

	doc.Find("script,style,nav,footer,header,aside").Remove()

	posting := ScrapedPosting{
		URL:   url,
		Title: strings.TrimSpace(doc.Find("h1").First().Text()),
	}
	for _, sel := range companySelectors {
		if el := doc.Find(sel).First(); el.Length() > 0 {
			posting.Company = strings.TrimSpace(el.Text())
			break
		}
	}

	body := strings.TrimSpace(doc.Find("body").Text())
	body = multiNewlineRe.ReplaceAllString(body, "\n\n")
	body = multiSpaceRe.ReplaceAllString(body, " ")
	if runes := []rune(body); len(runes) > maxBodyChars {
		body = string(runes[:maxBodyChars])
	}
	posting.Text = body

	if len(strings.TrimSpace(body)) < minBodyChars {
		return ScrapedPosting{}, errors.Input(errors.StageIngestURL, errors.ErrContentTooShort)
	}

	a.log.Debug("scraped job posting",
		"url", url, "title", posting.Title, "chars", len(posting.Text))
	return posting, nil
}
