// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photomock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/lightbox-labs/lightbox/lib/photoapi"
	"github.com/lightbox-labs/lightbox/lib/sqlitepool"
)

// MaxPerPage caps the page size a caller may ask for.
const MaxPerPage = 100

const schema = `
CREATE TABLE IF NOT EXISTS photos (
	position INTEGER PRIMARY KEY,
	id       TEXT NOT NULL UNIQUE,
	owner    TEXT NOT NULL,
	secret   TEXT NOT NULL,
	server   TEXT NOT NULL,
	farm     INTEGER NOT NULL,
	title    TEXT NOT NULL
);
`

const photoColumns = "id, owner, secret, server, farm, title"

// StoreConfig configures OpenStore.
type StoreConfig struct {
	// Path is the database file. Empty selects a private in-memory
	// catalog.
	Path string

	// Logger receives store diagnostics. Nil discards.
	Logger *slog.Logger
}

// Store is a photo catalog. Photos keep their insertion order, which is
// the order listings and searches return them in. Safe for concurrent
// use.
type Store struct {
	pool   *sqlitepool.Pool
	logger *slog.Logger
}

// OpenStore opens (or creates) a catalog.
func OpenStore(config StoreConfig) (*Store, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	path := config.Path
	if path == "" {
		path = sqlitepool.MemoryPath
	}
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:   path,
		Schema: schema,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("photo store: %w", err)
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Close releases the catalog.
func (store *Store) Close() error {
	return store.pool.Close()
}

// Insert appends photos in one transaction. A photo whose ID is already
// in the catalog replaces the stored fields but keeps its position.
func (store *Store) Insert(ctx context.Context, photos []photoapi.Photo) error {
	if len(photos) == 0 {
		return nil
	}
	err := store.pool.With(ctx, func(conn *sqlite.Conn) (err error) {
		endTransaction, err := sqlitex.ImmediateTransaction(conn)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer endTransaction(&err)

		for _, photo := range photos {
			if photo.ID == "" {
				return fmt.Errorf("photo with title %q has no id", photo.Title)
			}
			err = sqlitex.Execute(conn,
				"INSERT INTO photos ("+photoColumns+") VALUES (?, ?, ?, ?, ?, ?) "+
					"ON CONFLICT(id) DO UPDATE SET owner=excluded.owner, secret=excluded.secret, "+
					"server=excluded.server, farm=excluded.farm, title=excluded.title",
				&sqlitex.ExecOptions{
					Args: []any{photo.ID, photo.Owner, photo.Secret, photo.Server, photo.Farm, photo.Title},
				})
			if err != nil {
				return fmt.Errorf("inserting %s: %w", photo.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("photo store: %w", err)
	}
	store.logger.Debug("photos inserted", "count", len(photos))
	return nil
}

// Count returns the number of photos in the catalog.
func (store *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := store.pool.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "SELECT count(*) FROM photos", &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt(0)
				return nil
			},
		})
	})
	if err != nil {
		return 0, fmt.Errorf("photo store: count: %w", err)
	}
	return count, nil
}

// Search returns one page of photos whose title contains text, ignoring
// ASCII case. Pages are 1-based; a page past the end is empty.
func (store *Store) Search(ctx context.Context, text string, page, perPage int) (photoapi.PhotoPage, error) {
	return store.page(ctx, "WHERE title LIKE ? ESCAPE '\\'", []any{"%" + escapeLike(text) + "%"}, page, perPage)
}

// List returns one page of the whole catalog.
func (store *Store) List(ctx context.Context, page, perPage int) (photoapi.PhotoPage, error) {
	return store.page(ctx, "", nil, page, perPage)
}

func (store *Store) page(ctx context.Context, where string, args []any, page, perPage int) (photoapi.PhotoPage, error) {
	if page < 1 {
		return photoapi.PhotoPage{}, fmt.Errorf("photo store: page must be at least 1 (got %d)", page)
	}
	if perPage < 1 || perPage > MaxPerPage {
		return photoapi.PhotoPage{}, fmt.Errorf("photo store: per_page must be in [1, %d] (got %d)", MaxPerPage, perPage)
	}

	result := photoapi.PhotoPage{Page: page, PerPage: perPage, Photo: []photoapi.Photo{}}
	err := store.pool.With(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, "SELECT count(*) FROM photos "+where, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				result.Total = stmt.ColumnInt(0)
				return nil
			},
		})
		if err != nil {
			return err
		}

		pageArgs := append(append([]any(nil), args...), perPage, (page-1)*perPage)
		return sqlitex.Execute(conn,
			"SELECT "+photoColumns+" FROM photos "+where+" ORDER BY position LIMIT ? OFFSET ?",
			&sqlitex.ExecOptions{
				Args: pageArgs,
				ResultFunc: func(stmt *sqlite.Stmt) error {
					result.Photo = append(result.Photo, scanPhoto(stmt))
					return nil
				},
			})
	})
	if err != nil {
		return photoapi.PhotoPage{}, fmt.Errorf("photo store: query page %d: %w", page, err)
	}
	result.Pages = (result.Total + perPage - 1) / perPage
	return result, nil
}

func scanPhoto(stmt *sqlite.Stmt) photoapi.Photo {
	return photoapi.Photo{
		ID:     stmt.ColumnText(0),
		Owner:  stmt.ColumnText(1),
		Secret: stmt.ColumnText(2),
		Server: stmt.ColumnText(3),
		Farm:   stmt.ColumnInt(4),
		Title:  stmt.ColumnText(5),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes text match literally inside a LIKE pattern.
func escapeLike(text string) string {
	return likeEscaper.Replace(text)
}
