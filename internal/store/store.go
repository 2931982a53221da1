// Package store persists articles in a local SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/inforadar/inforadar/internal/feed"
	_ "modernc.org/sqlite"
)

// Store wraps the articles database.
type Store struct {
	db *sql.DB
}

// Filter narrows the article listing. Nil fields match everything.
type Filter struct {
	Read        *bool
	Interesting *bool
}

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guid TEXT NOT NULL UNIQUE,
	link TEXT NOT NULL,
	title TEXT NOT NULL,
	source TEXT NOT NULL DEFAULT 'habr',
	published_date TIMESTAMP NOT NULL,
	status_read INTEGER NOT NULL DEFAULT 0,
	status_interesting INTEGER NOT NULL DEFAULT 0,
	tags TEXT NOT NULL DEFAULT '[]',
	rating INTEGER,
	views TEXT NOT NULL DEFAULT '',
	reading_time TEXT NOT NULL DEFAULT '',
	comments INTEGER,
	bookmarks INTEGER
);
CREATE INDEX IF NOT EXISTS idx_articles_guid ON articles(guid);
`

// Open opens (or creates) the database at path and ensures the schema exists.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY under the TUI's interleaved reads and writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddArticles inserts articles that are not yet present (by GUID) and returns
// the number actually added.
func (s *Store) AddArticles(articles []feed.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO articles
			(guid, link, title, source, published_date, tags, rating, views, reading_time, comments, bookmarks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, a := range articles {
		tags, err := json.Marshal(a.Tags)
		if err != nil {
			return added, fmt.Errorf("failed to encode tags for %s: %w", a.GUID, err)
		}

		res, err := stmt.Exec(a.GUID, a.Link, a.Title, a.Source, a.Published.UTC(),
			string(tags), a.Rating, a.Views, a.ReadingTime, a.Comments, a.Bookmarks)
		if err != nil {
			return added, fmt.Errorf("failed to insert article %s: %w", a.GUID, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("failed to read insert result: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return added, nil
}

// Articles returns articles matching the filter, newest first.
func (s *Store) Articles(filter Filter) ([]feed.Article, error) {
	query := `
		SELECT id, guid, link, title, source, published_date,
		       status_read, status_interesting, tags, rating, views,
		       reading_time, comments, bookmarks
		FROM articles`

	var conds []string
	var args []interface{}
	if filter.Read != nil {
		conds = append(conds, "status_read = ?")
		args = append(args, *filter.Read)
	}
	if filter.Interesting != nil {
		conds = append(conds, "status_interesting = ?")
		args = append(args, *filter.Interesting)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY published_date DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []feed.Article
	for rows.Next() {
		var (
			a         feed.Article
			published time.Time
			tagsJSON  string
			rating    sql.NullInt64
			comments  sql.NullInt64
			bookmarks sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.GUID, &a.Link, &a.Title, &a.Source, &published,
			&a.Read, &a.Interesting, &tagsJSON, &rating, &a.Views,
			&a.ReadingTime, &comments, &bookmarks); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}

		a.Published = published
		if err := json.Unmarshal([]byte(tagsJSON), &a.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for %s: %w", a.GUID, err)
		}
		if rating.Valid {
			v := int(rating.Int64)
			a.Rating = &v
		}
		if comments.Valid {
			v := int(comments.Int64)
			a.Comments = &v
		}
		if bookmarks.Valid {
			v := int(bookmarks.Int64)
			a.Bookmarks = &v
		}

		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	return articles, nil
}

// SetRead updates the read status of an article.
func (s *Store) SetRead(id int64, read bool) error {
	return s.setStatus("status_read", id, read)
}

// SetInteresting updates the interesting status of an article.
func (s *Store) SetInteresting(id int64, interesting bool) error {
	return s.setStatus("status_interesting", id, interesting)
}

func (s *Store) setStatus(column string, id int64, value bool) error {
	res, err := s.db.Exec("UPDATE articles SET "+column+" = ? WHERE id = ?", value, id)
	if err != nil {
		return fmt.Errorf("failed to update %s for article %d: %w", column, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("article %d not found", id)
	}
	return nil
}

// Count returns the total number of stored articles.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}
