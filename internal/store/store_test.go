package store

import (
	"testing"
	"time"

	"github.com/inforadar/inforadar/internal/feed"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func sampleArticles() []feed.Article {
	return []feed.Article{
		{
			GUID:      "guid-1",
			Link:      "https://habr.com/ru/articles/1/",
			Title:     "First article",
			Source:    "habr",
			Published: time.Date(2024, 8, 12, 10, 0, 0, 0, time.UTC),
			Tags:      []string{"go", "generics"},
			Rating:    intPtr(42),
			Views:     "12K",
			Comments:  intPtr(17),
		},
		{
			GUID:      "guid-2",
			Link:      "https://habr.com/ru/articles/2/",
			Title:     "Second article",
			Source:    "habr",
			Published: time.Date(2024, 8, 13, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestAddArticlesDeduplicates(t *testing.T) {
	s := newTestStore(t)

	added, err := s.AddArticles(sampleArticles())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}

	// Same GUIDs again, plus one new.
	again := append(sampleArticles(), feed.Article{
		GUID:      "guid-3",
		Link:      "https://habr.com/ru/articles/3/",
		Title:     "Third article",
		Source:    "habr",
		Published: time.Date(2024, 8, 14, 10, 0, 0, 0, time.UTC),
	})
	added, err = s.AddArticles(again)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 1 {
		t.Errorf("expected 1 added on re-insert, got %d", added)
	}

	count, err := s.Count()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 stored articles, got %d", count)
	}
}

func TestAddArticlesEmpty(t *testing.T) {
	s := newTestStore(t)
	added, err := s.AddArticles(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 0 {
		t.Errorf("expected 0 added, got %d", added)
	}
}

func TestArticlesOrderAndRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddArticles(sampleArticles()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	articles, err := s.Articles(Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	// Newest first.
	if articles[0].GUID != "guid-2" || articles[1].GUID != "guid-1" {
		t.Errorf("unexpected order: %s, %s", articles[0].GUID, articles[1].GUID)
	}

	a := articles[1]
	if a.Title != "First article" {
		t.Errorf("unexpected title %q", a.Title)
	}
	if len(a.Tags) != 2 || a.Tags[0] != "go" {
		t.Errorf("tags did not survive the round trip: %v", a.Tags)
	}
	if a.Rating == nil || *a.Rating != 42 {
		t.Errorf("expected rating 42, got %v", a.Rating)
	}
	if a.Views != "12K" {
		t.Errorf("expected views \"12K\", got %q", a.Views)
	}
	if a.Comments == nil || *a.Comments != 17 {
		t.Errorf("expected 17 comments, got %v", a.Comments)
	}
	if a.Bookmarks != nil {
		t.Errorf("expected nil bookmarks, got %v", a.Bookmarks)
	}
	if a.ID == 0 {
		t.Error("expected a database id to be assigned")
	}
}

func TestStatusUpdatesAndFilters(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddArticles(sampleArticles()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	articles, err := s.Articles(Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.SetRead(articles[0].ID, true); err != nil {
		t.Fatalf("SetRead failed: %v", err)
	}
	if err := s.SetInteresting(articles[1].ID, true); err != nil {
		t.Fatalf("SetInteresting failed: %v", err)
	}

	read, err := s.Articles(Filter{Read: boolPtr(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(read) != 1 || read[0].ID != articles[0].ID {
		t.Errorf("read filter returned wrong set: %v", read)
	}

	interesting, err := s.Articles(Filter{Interesting: boolPtr(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(interesting) != 1 || interesting[0].ID != articles[1].ID {
		t.Errorf("interesting filter returned wrong set: %v", interesting)
	}

	unreadUninteresting, err := s.Articles(Filter{Read: boolPtr(false), Interesting: boolPtr(false)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unreadUninteresting) != 0 {
		t.Errorf("expected no unread+uninteresting articles, got %d", len(unreadUninteresting))
	}
}

func TestSetStatusMissingArticle(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetRead(999, true); err == nil {
		t.Error("expected error for missing article")
	}
}
