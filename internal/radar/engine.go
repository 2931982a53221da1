// Package radar ties the feed providers and the article store together.
package radar

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog/log"

	"github.com/inforadar/inforadar/internal/config"
	"github.com/inforadar/inforadar/internal/feed"
	"github.com/inforadar/inforadar/internal/store"
)

// Provider fetches articles from a source.
type Provider interface {
	Fetch(ctx context.Context) ([]feed.Article, error)
}

// Engine orchestrates fetching and storing articles.
type Engine struct {
	cfg       *config.Config
	store     *store.Store
	providers []Provider
	notify    bool
}

// NewEngine creates an engine with the Habr provider configured from cfg.
func NewEngine(cfg *config.Config, st *store.Store) *Engine {
	habr := feed.NewHabrProvider(feed.HabrOptions{
		Hubs:            cfg.Habr.Hubs,
		ExcludeKeywords: cfg.Habr.Filters.ExcludeKeywords,
		MinRating:       cfg.Habr.Filters.MinRating,
		ScrapeDelay:     cfg.Habr.ScrapeDelay,
	})

	return &Engine{
		cfg:       cfg,
		store:     st,
		providers: []Provider{habr},
		notify:    cfg.UI.Notify,
	}
}

// NewEngineWithProviders creates an engine over explicit providers (tests).
func NewEngineWithProviders(cfg *config.Config, st *store.Store, providers ...Provider) *Engine {
	return &Engine{cfg: cfg, store: st, providers: providers}
}

// Refresh runs every provider, stores the results and returns the number of
// newly added articles. When enabled, a desktop notification announces new
// arrivals.
func (e *Engine) Refresh(ctx context.Context) (int, error) {
	var fetched []feed.Article
	for _, p := range e.providers {
		articles, err := p.Fetch(ctx)
		if err != nil {
			return 0, fmt.Errorf("fetch failed: %w", err)
		}
		fetched = append(fetched, articles...)
	}

	added, err := e.store.AddArticles(fetched)
	if err != nil {
		return 0, fmt.Errorf("failed to store articles: %w", err)
	}

	log.Info().Int("fetched", len(fetched)).Int("added", added).Msg("refresh complete")

	if e.notify && added > 0 {
		msg := fmt.Sprintf("%d new articles", added)
		if err := beeep.Notify("Info Radar", msg, ""); err != nil {
			log.Debug().Err(err).Msg("desktop notification failed")
		}
	}

	return added, nil
}

// Articles returns stored articles, newest first.
func (e *Engine) Articles(filter store.Filter) ([]feed.Article, error) {
	return e.store.Articles(filter)
}

// SetRead updates an article's read status.
func (e *Engine) SetRead(id int64, read bool) error {
	return e.store.SetRead(id, read)
}

// SetInteresting updates an article's interesting status.
func (e *Engine) SetInteresting(id int64, interesting bool) error {
	return e.store.SetInteresting(id, interesting)
}
