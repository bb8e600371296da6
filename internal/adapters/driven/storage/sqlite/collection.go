package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zainraz03/agentic-assistant/internal/adapters/driven/storage/similarity"
	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.VectorIndex = (*Collection)(nil)

// CollectionInfo describes a stored collection.
type CollectionInfo struct {
	Name           string
	EmbeddingModel string
	Dimensions     int
	Entries        int
	CreatedAt      time.Time
}

// Collection is a named set of entries embedded with a single model.
// Upsert overwrites entries by ID.
type Collection struct {
	store    *Store
	name     string
	embedder driven.EmbeddingService
	minScore float64
}

// CollectionOption configures a Collection.
type CollectionOption func(*Collection)

// WithMinScore drops query matches scoring at or below score.
func WithMinScore(score float64) CollectionOption {
	return func(c *Collection) {
		c.minScore = score
	}
}

// Collection returns the named collection, creating it once if absent.
// An existing collection created with a different embedding model yields
// domain.ErrEmbeddingMismatch.
func (s *Store) Collection(
	ctx context.Context,
	name string,
	embedder driven.EmbeddingService,
	opts ...CollectionOption,
) (*Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}
	if embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	model, dims := embedder.ModelName(), embedder.Dimensions()

	var storedModel string
	var storedDims int
	err := s.db.QueryRowContext(ctx,
		"SELECT embedding_model, dimensions FROM collections WHERE name = ?", name,
	).Scan(&storedModel, &storedDims)

	switch {
	case isNoRows(err):
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO collections (name, embedding_model, dimensions, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO NOTHING
		`, name, model, dims, time.Now().UTC())
		if err != nil {
			return nil, unavailable("creating collection", err)
		}
	case err != nil:
		return nil, unavailable("opening collection", err)
	case storedModel != model || storedDims != dims:
		return nil, fmt.Errorf("%w: collection %q uses %s (%d dims), configured model is %s (%d dims)",
			domain.ErrEmbeddingMismatch, name, storedModel, storedDims, model, dims)
	}

	c := &Collection{store: s, name: name, embedder: embedder}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Collections lists every collection with its entry count.
func (s *Store) Collections(ctx context.Context) ([]CollectionInfo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name, c.embedding_model, c.dimensions, c.created_at, COUNT(e.id)
		FROM collections c
		LEFT JOIN entries e ON e.collection = c.name
		GROUP BY c.name
		ORDER BY c.name
	`)
	if err != nil {
		return nil, unavailable("listing collections", err)
	}
	defer rows.Close()

	var infos []CollectionInfo
	for rows.Next() {
		var info CollectionInfo
		if err := rows.Scan(&info.Name, &info.EmbeddingModel, &info.Dimensions,
			&info.CreatedAt, &info.Entries); err != nil {
			return nil, unavailable("scanning collection", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DropCollection deletes a collection and all its entries.
// Dropping a missing collection returns domain.ErrNotFound.
func (s *Store) DropCollection(ctx context.Context, name string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("beginning drop", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE collection = ?", name); err != nil {
		return unavailable("dropping entries", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM collections WHERE name = ?", name)
	if err != nil {
		return unavailable("dropping collection", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return unavailable("committing drop", err)
	}
	return nil
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Upsert embeds and stores entries, overwriting any with the same ID.
// The batch is written in one transaction.
func (c *Collection) Upsert(ctx context.Context, entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	vectors, err := c.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding entries: %w", err)
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("embedding entries: got %d vectors for %d texts", len(vectors), len(entries))
	}

	ctx, cancel := c.store.withTimeout(ctx)
	defer cancel()

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("beginning upsert", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (collection, id, text, filename, page, embedding, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			text = excluded.text,
			filename = excluded.filename,
			page = excluded.page,
			embedding = excluded.embedding,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return unavailable("preparing upsert", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, c.name, e.ID, e.Text,
			e.Metadata.Filename, e.Metadata.Page, float32SliceToBytes(vectors[i]), now); err != nil {
			return unavailable("upserting entry "+e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("committing upsert", err)
	}
	return nil
}

// Query ranks every entry by cosine similarity to text and returns the
// best topK. A blank query or an empty collection yields an empty slice.
func (c *Collection) Query(ctx context.Context, text string, topK int) ([]domain.Match, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.Match{}, nil
	}

	n, err := c.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []domain.Match{}, nil
	}

	query, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	ctx, cancel := c.store.withTimeout(ctx)
	defer cancel()

	rows, err := c.store.db.QueryContext(ctx,
		"SELECT id, text, filename, page, embedding FROM entries WHERE collection = ?", c.name)
	if err != nil {
		return nil, unavailable("querying entries", err)
	}
	defer rows.Close()

	matches := make([]domain.Match, 0, n)
	for rows.Next() {
		var m domain.Match
		var blob []byte
		if err := rows.Scan(&m.ID, &m.Text, &m.Metadata.Filename, &m.Metadata.Page, &blob); err != nil {
			return nil, unavailable("scanning entry", err)
		}
		m.Score = similarity.Cosine(query, bytesToFloat32Slice(blob))
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("reading entries", err)
	}

	return similarity.Rank(matches, topK, c.minScore), nil
}

// Count returns the number of entries in the collection.
func (c *Collection) Count(ctx context.Context) (int, error) {
	ctx, cancel := c.store.withTimeout(ctx)
	defer cancel()

	var n int
	err := c.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM entries WHERE collection = ?", c.name).Scan(&n)
	if err != nil {
		return 0, unavailable("counting entries", err)
	}
	return n, nil
}

// Close is a no-op; the Store owns the connection.
func (c *Collection) Close() error {
	return nil
}
