// Package sqlitesource is an exampleio.Source backed by a SQLite table,
// for corpora too large to comfortably hold as a JSON-lines file.
package sqlitesource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/inductor/pkg/inductor/internalerr"
	"github.com/cognicore/inductor/pkg/inductor/parser"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Source streams rows from an "examples" table in ascending seq order.
type Source struct {
	db     *sql.DB
	rows   *sql.Rows
	parser parser.Parser
}

// Open opens the SQLite database at path and creates the examples table
// if it does not already exist.
func Open(ctx context.Context, path string, p parser.Parser) (*Source, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("exampleio/sqlitesource: open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("exampleio/sqlitesource: enable WAL: %w", err)
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, facts_json, query_json FROM examples ORDER BY seq ASC`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("exampleio/sqlitesource: query examples: %w", err)
	}

	return &Source{db: db, rows: rows, parser: p}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS examples (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL,
	facts_json TEXT NOT NULL,
	query_json TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Insert appends one example row, encoding its facts and query atoms as
// literal text the way parser.Parser.ParseLiteral expects to read them
// back. It is a convenience for building fixtures and ingest tools, not
// part of the exampleio.Source contract.
func Insert(ctx context.Context, db *sql.DB, id string, facts, query []string) error {
	factsJSON, err := json.Marshal(facts)
	if err != nil {
		return err
	}
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO examples (id, facts_json, query_json) VALUES (?, ?, ?)`, id, string(factsJSON), string(queryJSON))
	return err
}

// Next implements exampleio.Source.
func (s *Source) Next(ctx context.Context) (term.Example, bool, error) {
	select {
	case <-ctx.Done():
		return term.Example{}, false, ctx.Err()
	default:
	}

	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return term.Example{}, false, fmt.Errorf("exampleio/sqlitesource: %w", err)
		}
		return term.Example{}, false, nil
	}

	var id, factsJSON, queryJSON string
	if err := s.rows.Scan(&id, &factsJSON, &queryJSON); err != nil {
		return term.Example{}, false, fmt.Errorf("exampleio/sqlitesource: scan row: %w", err)
	}

	var factTexts, queryTexts []string
	if err := json.Unmarshal([]byte(factsJSON), &factTexts); err != nil {
		return term.Example{}, false, fmt.Errorf("exampleio/sqlitesource: %w: decode facts_json for %s: %v", internalerr.ErrInvalidConfig, id, err)
	}
	if err := json.Unmarshal([]byte(queryJSON), &queryTexts); err != nil {
		return term.Example{}, false, fmt.Errorf("exampleio/sqlitesource: %w: decode query_json for %s: %v", internalerr.ErrInvalidConfig, id, err)
	}

	ex := term.Example{ID: id}
	for _, text := range factTexts {
		lit, err := s.parser.ParseLiteral(text)
		if err != nil {
			return term.Example{}, false, fmt.Errorf("exampleio/sqlitesource: parse fact %q for %s: %w", text, id, err)
		}
		ex.Facts = append(ex.Facts, lit)
	}
	for _, text := range queryTexts {
		lit, err := s.parser.ParseLiteral(text)
		if err != nil {
			return term.Example{}, false, fmt.Errorf("exampleio/sqlitesource: parse query atom %q for %s: %w", text, id, err)
		}
		ex.QueryAtoms = append(ex.QueryAtoms, lit)
	}

	return ex, true, nil
}

// Close implements exampleio.Source.
func (s *Source) Close() error {
	s.rows.Close()
	return s.db.Close()
}
