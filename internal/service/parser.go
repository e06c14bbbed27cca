package service

import (
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"strings"

	"github.com/jjenkins/gazette/internal/model"
	"github.com/jjenkins/gazette/internal/query"
)

// ParseResult contains what the importer stores alongside a row
type ParseResult struct {
	Checksum  string
	Category  sql.NullString
	WordCount int
	Skipped   bool // Category outside the enumeration
}

// Parser extracts import metadata from rows of one table
type Parser struct {
	header      []string
	hasCategory bool
	textColumn  string
	hasText     bool
}

// NewParser creates a Parser for rows following header
func NewParser(header []string) *Parser {
	cols := model.NewColumns(header)
	text, ok := query.TextField(cols).Name()
	return &Parser{
		header:      header,
		hasCategory: cols.Has(model.ColumnCategory),
		textColumn:  text,
		hasText:     ok,
	}
}

// Parse computes the checksum, category and body word count of a row
func (p *Parser) Parse(row map[string]string) *ParseResult {
	rec := model.Record{Fields: row}
	result := &ParseResult{
		Checksum: p.calculateChecksum(row),
	}

	if p.hasCategory {
		c := rec.Category()
		if !c.Valid() {
			result.Skipped = true
			return result
		}
		result.Category = sql.NullString{String: string(c), Valid: true}
	}

	if p.hasText {
		if body, ok := rec.Value(p.textColumn); ok {
			result.WordCount = len(strings.Fields(body))
		}
	}

	return result
}

// calculateChecksum computes the MD5 hash of the row's cells in header order
func (p *Parser) calculateChecksum(row map[string]string) string {
	h := md5.New()
	for _, col := range p.header {
		h.Write([]byte(col))
		h.Write([]byte{0x1f})
		h.Write([]byte(row[col]))
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))
}
