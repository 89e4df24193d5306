// ABOUTME: CSV to JSON conversion for sharing generated datasets.
// ABOUTME: Records keep column order; numeric and list cells are coerced heuristically.

package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/2389/deskgen/internal/dataset"
	apperrors "github.com/2389/deskgen/internal/errors"
)

type Options struct {
	// Output defaults to the input path with a .json extension.
	Output string
	// Sample limits the number of records; 0 converts everything.
	Sample int
}

type Metadata struct {
	SourceFile        string         `json:"source_file"`
	TotalRecords      int            `json:"total_records"`
	Fields            []string       `json:"fields"`
	SampleSize        int            `json:"sample_size"`
	OrganizationTypes map[string]int `json:"organization_types"`
}

type Document struct {
	Metadata Metadata `json:"metadata"`
	Records  []Record `json:"records"`
}

type Field struct {
	Key   string
	Value any
}

// Record is one CSV row as an ordered JSON object.
type Record []Field

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encode(&buf, f.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encode(&buf, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode appends v without HTML escaping or a trailing newline.
func encode(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

// OutputPath swaps the extension of csvPath for .json.
func OutputPath(csvPath string) string {
	return strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".json"
}

// Convert reads csvPath and writes the JSON document. It returns the document and the
// path it was written to.
func Convert(csvPath string, opts Options) (*Document, string, error) {
	table, err := dataset.ReadTable(csvPath)
	if err != nil {
		if errors.Is(err, dataset.ErrMissingInput) {
			return nil, "", apperrors.New(apperrors.ErrMissingInput, "CSV file not found").WithPath(csvPath)
		}
		return nil, "", err
	}

	doc := Build(csvPath, table, opts.Sample)

	out := opts.Output
	if out == "" {
		out = OutputPath(csvPath)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, "", err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrWriteFailed, "write json", err).WithPath(out)
	}
	return doc, out, nil
}

// Build converts a parsed table. sample > 0 keeps only the first sample rows.
func Build(source string, t *dataset.Table, sample int) *Document {
	rows := t.Rows
	if sample > 0 && len(rows) > sample {
		rows = rows[:sample]
	}

	fields := t.Header
	if fields == nil {
		fields = []string{}
	}
	orgCol := -1
	for i, h := range fields {
		if h == "organization_type" {
			orgCol = i
		}
	}

	doc := &Document{
		Metadata: Metadata{
			SourceFile:        source,
			TotalRecords:      len(rows),
			Fields:            fields,
			SampleSize:        len(rows),
			OrganizationTypes: map[string]int{},
		},
		Records: make([]Record, 0, len(rows)),
	}
	if sample > 0 {
		doc.Metadata.SampleSize = sample
	}

	for _, cells := range rows {
		rec := make(Record, 0, len(fields))
		for i, key := range fields {
			var v string
			if i < len(cells) {
				v = cells[i]
			}
			rec = append(rec, Field{Key: key, Value: Coerce(key, v)})
		}
		if orgCol >= 0 && orgCol < len(cells) {
			doc.Metadata.OrganizationTypes[cells[orgCol]]++
		}
		doc.Records = append(doc.Records, rec)
	}
	return doc
}

// Coerce turns all-digit cells into integers, monthly_revenue into a float and a
// payment_methods JSON list into a list. Anything else stays a string.
func Coerce(key, value string) any {
	if allDigits(value) {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		trimmed := strings.TrimLeft(value, "0")
		if trimmed == "" {
			trimmed = "0"
		}
		return json.Number(trimmed)
	}
	switch {
	case key == "monthly_revenue" && allDigits(strings.ReplaceAll(value, ".", "")):
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case key == "payment_methods" && strings.HasPrefix(value, "["):
		var list any
		if err := json.Unmarshal([]byte(value), &list); err == nil {
			return list
		}
	}
	return value
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
