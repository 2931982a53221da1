package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newHabrServer serves a hub feed and article pages resembling Habr's markup.
// Article links inside the feed point back at the test server.
func newHabrServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/ru/rss/hubs/go/articles/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Go / Habr</title>
  <link>%[1]s</link>
  <item>
    <guid>https://habr.com/p/1/</guid>
    <title>Generics in practice</title>
    <link>%[1]s/articles/1/?utm_source=rss&amp;utm_medium=feed</link>
    <pubDate>Mon, 12 Aug 2024 10:00:00 GMT</pubDate>
    <category>go</category>
    <category>generics</category>
  </item>
  <item>
    <guid>https://habr.com/p/2/</guid>
    <title>Top 10 vacancies this week</title>
    <link>%[1]s/articles/2/</link>
    <pubDate>Mon, 12 Aug 2024 11:00:00 GMT</pubDate>
    <category>go</category>
  </item>
  <item>
    <guid>https://habr.com/p/3/</guid>
    <title>A low effort post</title>
    <link>%[1]s/articles/3/</link>
    <pubDate>Mon, 12 Aug 2024 12:00:00 GMT</pubDate>
    <category>go</category>
  </item>
</channel>
</rss>`, server.URL)
	})

	mux.HandleFunc("/articles/1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<span class="tm-votes-meter__value">+42</span>
<span class="tm-icon-counter__value">12K</span>
<span class="tm-article-reading-time__label">7 min</span>
<span class="tm-comments-link__comment-count">17</span>
<span class="bookmarks-button__counter">88</span>
</body></html>`)
	})

	// Article 3 rates below any sensible threshold.
	mux.HandleFunc("/articles/3/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<span class="tm-votes-meter__value">-3</span>
</body></html>`)
	})

	return server
}

func TestHabrFetch(t *testing.T) {
	server := newHabrServer(t)

	provider := NewHabrProvider(HabrOptions{
		Hubs:            []string{"go"},
		ExcludeKeywords: []string{"vacancies"},
		MinRating:       0,
	})
	provider.SetBaseURL(server.URL)

	articles, err := provider.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Article 2 is excluded by keyword, article 3 by rating.
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}

	a := articles[0]
	if a.Title != "Generics in practice" {
		t.Errorf("unexpected title %q", a.Title)
	}
	if a.GUID != "https://habr.com/p/1/" {
		t.Errorf("unexpected guid %q", a.GUID)
	}
	if a.Source != "habr" {
		t.Errorf("unexpected source %q", a.Source)
	}
	if a.Link != server.URL+"/articles/1/" {
		t.Errorf("expected tracking params stripped, got %q", a.Link)
	}
	if a.Rating == nil || *a.Rating != 42 {
		t.Errorf("expected rating 42, got %v", a.Rating)
	}
	if a.Views != "12K" {
		t.Errorf("expected views \"12K\", got %q", a.Views)
	}
	if a.ReadingTime != "7 min" {
		t.Errorf("expected reading time \"7 min\", got %q", a.ReadingTime)
	}
	if a.Comments == nil || *a.Comments != 17 {
		t.Errorf("expected 17 comments, got %v", a.Comments)
	}
	if a.Bookmarks == nil || *a.Bookmarks != 88 {
		t.Errorf("expected 88 bookmarks, got %v", a.Bookmarks)
	}
	if len(a.Tags) != 2 || a.Tags[0] != "go" {
		t.Errorf("unexpected tags %v", a.Tags)
	}
	if a.Published.IsZero() {
		t.Error("expected published date to be set")
	}
}

func TestHabrFetchMinRating(t *testing.T) {
	server := newHabrServer(t)

	provider := NewHabrProvider(HabrOptions{
		Hubs:      []string{"go"},
		MinRating: 50,
	})
	provider.SetBaseURL(server.URL)

	articles, err := provider.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected all articles below rating 50 to be dropped, got %d", len(articles))
	}
}

func TestHabrFetchBadHubSkipped(t *testing.T) {
	server := newHabrServer(t)

	provider := NewHabrProvider(HabrOptions{
		Hubs: []string{"missing", "go"},
	})
	provider.SetBaseURL(server.URL)

	articles, err := provider.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The missing hub 404s and is skipped; the good hub still contributes.
	if len(articles) == 0 {
		t.Error("expected articles from the healthy hub")
	}
}

func TestCleanLink(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://habr.com/ru/articles/1/?utm_source=rss&utm_medium=feed", "https://habr.com/ru/articles/1/"},
		{"https://habr.com/ru/articles/1/#comments", "https://habr.com/ru/articles/1/"},
		{"https://habr.com/ru/articles/1/", "https://habr.com/ru/articles/1/"},
	}
	for _, tt := range tests {
		if got := cleanLink(tt.in); got != tt.want {
			t.Errorf("cleanLink(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
