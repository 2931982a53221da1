package radar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inforadar/inforadar/internal/config"
	"github.com/inforadar/inforadar/internal/feed"
	"github.com/inforadar/inforadar/internal/store"
)

type fakeProvider struct {
	articles []feed.Article
	err      error
}

func (p *fakeProvider) Fetch(ctx context.Context) ([]feed.Article, error) {
	return p.articles, p.err
}

func newTestEngine(t *testing.T, providers ...Provider) *Engine {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewEngineWithProviders(config.DefaultConfig(), st, providers...)
}

func TestRefreshStoresNewArticles(t *testing.T) {
	provider := &fakeProvider{articles: []feed.Article{
		{GUID: "g1", Link: "https://example.com/1", Title: "one", Source: "habr", Published: time.Now()},
		{GUID: "g2", Link: "https://example.com/2", Title: "two", Source: "habr", Published: time.Now()},
	}}
	engine := newTestEngine(t, provider)

	added, err := engine.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}

	// A second refresh fetching the same GUIDs adds nothing.
	added, err = engine.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 0 {
		t.Errorf("expected 0 added on repeat refresh, got %d", added)
	}

	articles, err := engine.Articles(store.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("expected 2 stored articles, got %d", len(articles))
	}
}

func TestRefreshPropagatesFetchError(t *testing.T) {
	engine := newTestEngine(t, &fakeProvider{err: errors.New("boom")})
	if _, err := engine.Refresh(context.Background()); err == nil {
		t.Error("expected error from failing provider")
	}
}

func TestStatusUpdates(t *testing.T) {
	provider := &fakeProvider{articles: []feed.Article{
		{GUID: "g1", Link: "https://example.com/1", Title: "one", Source: "habr", Published: time.Now()},
	}}
	engine := newTestEngine(t, provider)

	if _, err := engine.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	articles, err := engine.Articles(store.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := engine.SetRead(articles[0].ID, true); err != nil {
		t.Fatalf("SetRead failed: %v", err)
	}
	if err := engine.SetInteresting(articles[0].ID, true); err != nil {
		t.Fatalf("SetInteresting failed: %v", err)
	}

	updated, err := engine.Articles(store.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated[0].Read || !updated[0].Interesting {
		t.Errorf("statuses not persisted: read=%v interesting=%v", updated[0].Read, updated[0].Interesting)
	}
}
