package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"travelbot/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

var tableNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// DocumentStore backs the retrieval-augmented agents with pgvector
// nearest-neighbour search over pre-embedded document chunks. Tables are
// written by the offline ingestion step; this store only reads.
type DocumentStore struct {
	db *sqlx.DB
}

// NewDocumentStore connects to the document database
func NewDocumentStore(dsn string, maxConn, maxIdleConn int) (*DocumentStore, error) {
	// Disable prepared statement caching to avoid "unnamed prepared
	// statement does not exist" errors behind pgbouncer.
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DocumentStore{db: db}, nil
}

// Close closes the database connection
func (s *DocumentStore) Close() error {
	return s.db.Close()
}

// SearchSimilar returns the topK nearest chunks in the given table by cosine
// distance to the query embedding.
func (s *DocumentStore) SearchSimilar(ctx context.Context, table string, embedding []float32, topK int) ([]model.Document, error) {
	// The table name comes from configuration, not user input, but it is
	// interpolated into SQL so it is still validated as a bare identifier.
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid document table name: %q", table)
	}
	if topK <= 0 {
		topK = 5
	}

	query := fmt.Sprintf(`
		SELECT id, content, source, embedding <=> $1 AS distance
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2
	`, table)

	var docs []model.Document
	err := s.db.SelectContext(ctx, &docs, query, pgvector.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}

	return docs, nil
}

// CountDocuments reports the size of a document table, used by health checks
func (s *DocumentStore) CountDocuments(ctx context.Context, table string) (int, error) {
	if !tableNameRe.MatchString(table) {
		return 0, fmt.Errorf("invalid document table name: %q", table)
	}
	var count int
	if err := s.db.GetContext(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}
