package feed

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the Habr site root.
	DefaultBaseURL = "https://habr.com"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"
)

// HabrOptions configures the Habr provider.
type HabrOptions struct {
	// Hubs is the list of hub slugs to fetch.
	Hubs []string

	// ExcludeKeywords drops articles whose title contains any of these
	// (case-insensitive).
	ExcludeKeywords []string

	// MinRating drops articles rated below this value. Articles whose rating
	// could not be scraped are dropped as well.
	MinRating int

	// ScrapeDelay is the upper bound of the randomized pause between page
	// scrapes. Zero disables the pause (tests).
	ScrapeDelay time.Duration
}

// HabrProvider fetches hub RSS feeds and enriches each entry by scraping the
// article page for rating, views, reading time, comments and bookmarks.
type HabrProvider struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	baseURL    string
	opts       HabrOptions
}

// NewHabrProvider creates a provider for the given options.
func NewHabrProvider(opts HabrOptions) *HabrProvider {
	httpClient := &http.Client{Timeout: DefaultTimeout}
	parser := gofeed.NewParser()
	parser.Client = httpClient
	parser.UserAgent = userAgent

	return &HabrProvider{
		httpClient: httpClient,
		parser:     parser,
		baseURL:    DefaultBaseURL,
		opts:       opts,
	}
}

// SetBaseURL overrides the site root (useful for testing).
func (p *HabrProvider) SetBaseURL(baseURL string) {
	p.baseURL = baseURL
}

// SetHTTPClient allows overriding the default HTTP client (useful for testing).
func (p *HabrProvider) SetHTTPClient(httpClient *http.Client) {
	p.httpClient = httpClient
	p.parser.Client = httpClient
}

// Fetch retrieves, enriches and filters articles from all configured hubs.
// A failing hub is logged and skipped; the remaining hubs still contribute.
func (p *HabrProvider) Fetch(ctx context.Context) ([]Article, error) {
	var articles []Article

	for _, hub := range p.opts.Hubs {
		hubArticles, err := p.fetchHub(ctx, hub)
		if err != nil {
			log.Warn().Err(err).Str("hub", hub).Msg("failed to fetch hub, skipping")
			continue
		}
		articles = append(articles, hubArticles...)
	}

	return articles, nil
}

// fetchHub fetches one hub's RSS feed and enriches the surviving entries.
func (p *HabrProvider) fetchHub(ctx context.Context, hub string) ([]Article, error) {
	feedURL := fmt.Sprintf("%s/ru/rss/hubs/%s/articles/?with_tags=true", p.baseURL, hub)

	parsed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed for hub %s: %w", hub, err)
	}

	var articles []Article
	for _, item := range parsed.Items {
		if p.excludedByKeyword(item.Title) {
			continue
		}

		published := time.Now()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}

		article := Article{
			GUID:      item.GUID,
			Link:      cleanLink(item.Link),
			Title:     item.Title,
			Source:    "habr",
			Published: published,
			Tags:      item.Categories,
		}

		if err := p.pause(ctx); err != nil {
			return articles, err
		}

		p.enrich(ctx, &article)

		if article.Rating == nil || *article.Rating < p.opts.MinRating {
			continue
		}

		articles = append(articles, article)
	}

	return articles, nil
}

// enrich scrapes the article page for extra metadata. Scrape failures leave
// the article as-is; the rating filter then decides its fate.
func (p *HabrProvider) enrich(ctx context.Context, article *Article) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, article.Link, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("link", article.Link).Msg("article page fetch failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return
	}

	if text := firstText(doc, ".tm-votes-meter__value"); text != "" {
		if rating, err := strconv.Atoi(strings.TrimPrefix(text, "+")); err == nil {
			article.Rating = &rating
		}
	}
	article.Views = firstText(doc, ".tm-icon-counter__value")
	article.ReadingTime = firstText(doc, ".tm-article-reading-time__label")
	if text := firstText(doc, ".tm-comments-link__comment-count"); text != "" {
		if comments, err := strconv.Atoi(text); err == nil {
			article.Comments = &comments
		}
	}
	if text := firstText(doc, ".bookmarks-button__counter"); text != "" {
		if bookmarks, err := strconv.Atoi(text); err == nil {
			article.Bookmarks = &bookmarks
		}
	}
}

// pause sleeps for a randomized interval between page scrapes so consecutive
// requests do not hammer the site.
func (p *HabrProvider) pause(ctx context.Context) error {
	if p.opts.ScrapeDelay <= 0 {
		return nil
	}

	half := p.opts.ScrapeDelay / 2
	delay := half + time.Duration(rand.Int63n(int64(half)+1))

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *HabrProvider) excludedByKeyword(title string) bool {
	lower := strings.ToLower(title)
	for _, keyword := range p.opts.ExcludeKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// firstText returns the trimmed text of the first node matching the selector.
func firstText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// cleanLink strips query parameters and fragments (UTM trackers) from a URL.
func cleanLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
