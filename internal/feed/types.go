// Package feed fetches and enriches articles from configured sources.
package feed

import "time"

// Article is a single feed entry enriched with scraped page metadata.
type Article struct {
	ID        int64
	GUID      string
	Link      string
	Title     string
	Source    string
	Published time.Time
	Tags      []string

	Read        bool
	Interesting bool

	// Scraped metadata. Views and ReadingTime keep the site's display form
	// ("12K", "7 min"); Rating and Comments are parsed when present.
	Rating      *int
	Views       string
	ReadingTime string
	Comments    *int
	Bookmarks   *int
}
