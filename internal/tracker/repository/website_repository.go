package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-rival-tracker/internal/tracker/config"
	"golang-rival-tracker/pkg/logger"
	"golang-rival-tracker/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// websiteRepository fetches a company's website and extracts its visible
// text for the AI extraction step.
type websiteRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	feedParser     *gofeed.Parser
}

// NewWebsiteRepository creates a new HTTP-backed website repository.
func NewWebsiteRepository(cfg *config.Config, log *logger.Logger) WebsiteRepository {
	timeout := time.Duration(cfg.Scraper.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	perMinute := cfg.Scraper.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	return &websiteRepository{
		client:         &http.Client{Timeout: timeout},
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		feedParser:     gofeed.NewParser(),
	}
}

// FetchPageText downloads the page and returns its title plus the
// visible text, truncated to the configured maximum. The readability
// pass strips navigation and boilerplate before text extraction.
func (r *websiteRepository) FetchPageText(ctx context.Context, pageURL string) (string, string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}
	ua := r.cfg.Scraper.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read response body: %w", err)
	}

	fullDoc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse page: %w", err)
	}
	title := strings.TrimSpace(fullDoc.Find("title").First().Text())

	text := r.extractText(pageURL, body, fullDoc)
	text = utils.CleanToValidUTF8(text)
	text = utils.Truncate(text, r.cfg.Scraper.MaxChars)

	return title, text, nil
}

// extractText prefers the readability main-content pass; when that fails
// (single-page apps, sparse landing pages) it falls back to the whole
// document's text.
func (r *websiteRepository) extractText(pageURL string, body []byte, fullDoc *goquery.Document) string {
	doc, err := readability.NewDocument(string(body))
	if err == nil {
		contentDoc, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content()))
		if err == nil {
			if text := collapseText(contentDoc); text != "" {
				return text
			}
		}
	}

	r.logger.Debug("Readability pass yielded no content, using full page text",
		logger.StringField("url", pageURL))
	fullDoc.Find("script, style, noscript").Remove()
	return collapseText(fullDoc)
}

func collapseText(doc *goquery.Document) string {
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// FetchNewsHeadlines pulls recent Google News headlines mentioning the
// company, used to enrich the traction-signals field.
func (r *websiteRepository) FetchNewsHeadlines(ctx context.Context, companyName string) ([]string, error) {
	if companyName == "" || r.cfg.Scraper.NewsHeadlines <= 0 {
		return nil, nil
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	feedURL := fmt.Sprintf("https://news.google.com/rss/search?q=%s", url.QueryEscape(companyName))
	feed, err := r.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	max := r.cfg.Scraper.NewsHeadlines
	headlines := make([]string, 0, max)
	for _, item := range feed.Items {
		if len(headlines) >= max {
			break
		}
		title := utils.CleanToValidUTF8(strings.TrimSpace(item.Title))
		if title != "" {
			headlines = append(headlines, title)
		}
	}
	return headlines, nil
}
