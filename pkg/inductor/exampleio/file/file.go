// Package file is the default exampleio.Source: a newline-delimited JSON
// file where each line holds one example's facts and query atoms as
// literal text, parsed through a parser.Parser.
package file

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cognicore/inductor/pkg/inductor/internalerr"
	"github.com/cognicore/inductor/pkg/inductor/parser"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// record is the on-disk shape of one line.
type record struct {
	ID    string   `json:"id"`
	Facts []string `json:"facts"`
	Query []string `json:"query"`
}

// Source reads examples from a JSON-lines file.
type Source struct {
	f      *os.File
	scan   *bufio.Scanner
	parser parser.Parser
	line   int
}

// Open opens path and prepares to stream examples from it, parsing each
// fact and query literal with p.
func Open(path string, p parser.Parser) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("exampleio/file: open %s: %w", path, err)
	}
	scan := bufio.NewScanner(f)
	scan.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	return &Source{f: f, scan: scan, parser: p}, nil
}

// Next implements exampleio.Source.
func (s *Source) Next(ctx context.Context) (term.Example, bool, error) {
	select {
	case <-ctx.Done():
		return term.Example{}, false, ctx.Err()
	default:
	}

	for {
		if !s.scan.Scan() {
			if err := s.scan.Err(); err != nil {
				return term.Example{}, false, fmt.Errorf("exampleio/file: read line %d: %w", s.line, err)
			}
			return term.Example{}, false, nil
		}
		s.line++
		line := s.scan.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return term.Example{}, false, fmt.Errorf("exampleio/file: %w: line %d: %v", internalerr.ErrInvalidConfig, s.line, err)
		}

		ex, err := toExample(rec, s.parser)
		if err != nil {
			return term.Example{}, false, fmt.Errorf("exampleio/file: line %d: %w", s.line, err)
		}
		return ex, true, nil
	}
}

// Close implements exampleio.Source.
func (s *Source) Close() error {
	return s.f.Close()
}

func toExample(rec record, p parser.Parser) (term.Example, error) {
	ex := term.Example{ID: rec.ID}
	for _, text := range rec.Facts {
		lit, err := p.ParseLiteral(text)
		if err != nil {
			return term.Example{}, fmt.Errorf("parse fact %q: %w", text, err)
		}
		ex.Facts = append(ex.Facts, lit)
	}
	for _, text := range rec.Query {
		lit, err := p.ParseLiteral(text)
		if err != nil {
			return term.Example{}, fmt.Errorf("parse query atom %q: %w", text, err)
		}
		ex.QueryAtoms = append(ex.QueryAtoms, lit)
	}
	return ex, nil
}

var _ io.Closer = (*Source)(nil)
