// ABOUTME: Header-first CSV tables with atomic writes.
// ABOUTME: Shared plumbing for the per-entity readers and writers.

package dataset

import (
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/2389/deskgen/internal/errors"
	"github.com/2389/deskgen/internal/model"
)

// ErrMissingInput matches (via errors.Is) any read of a file that does not exist.
var ErrMissingInput = apperrors.New(apperrors.ErrMissingInput, "input file not found")

// Table is a parsed CSV file: the header and its rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable loads a whole CSV file. A missing file yields ErrMissingInput with the path.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, ErrMissingInput.WithPath(path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrMalformedRecord, "parse csv", err).WithPath(path)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// WriteTable writes header and rows to a temp file next to path, then renames it into
// place. On any error the destination is left untouched.
func WriteTable(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "create data dir", err).WithPath(dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "create temp file", err).WithPath(path)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := writeCSV(tmp, header, rows); err != nil {
		cleanup()
		return apperrors.Wrap(apperrors.ErrWriteFailed, "write csv", err).WithPath(path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(apperrors.ErrWriteFailed, "close temp file", err).WithPath(path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(apperrors.ErrWriteFailed, "rename temp file", err).WithPath(path)
	}
	return nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// row reads typed cells by column name and remembers the first failure, so a record
// decoder can read every field and check once at the end.
type row struct {
	path  string
	line  int
	index map[string]int
	cells []string
	err   error
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func (r *row) fail(field string, cause error) {
	if r.err != nil {
		return
	}
	r.err = apperrors.Wrap(apperrors.ErrMalformedRecord, "invalid value", cause).
		WithPath(r.path).AtLine(r.line).WithField(field)
}

func (r *row) str(field string) string {
	i, ok := r.index[field]
	if !ok {
		r.fail(field, fmt.Errorf("missing column"))
		return ""
	}
	if i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// opt reads a column that may be absent from older files.
func (r *row) opt(field string) string {
	i, ok := r.index[field]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

func (r *row) int(field string) int {
	s := r.str(field)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		r.fail(field, err)
	}
	return v
}

func (r *row) float(field string) float64 {
	s := r.str(field)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.fail(field, err)
	}
	return v
}

func (r *row) bool(field string) bool {
	s := r.str(field)
	if s == "" {
		return false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		r.fail(field, err)
	}
	return v
}

func (r *row) parse(field, layout string) time.Time {
	s := r.str(field)
	if s == "" {
		return time.Time{}
	}
	v, err := time.Parse(layout, s)
	if err != nil {
		r.fail(field, err)
	}
	return v
}

func (r *row) time(field string) time.Time {
	return r.parse(field, model.TimeLayout)
}

func (r *row) date(field string) time.Time {
	return r.parse(field, model.DateLayout)
}

func (r *row) list(field string) []string {
	s := r.str(field)
	if s == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		r.fail(field, err)
	}
	return out
}

// decodeRows runs fn over every row of t, stopping at the first malformed record.
func decodeRows[T any](path string, t *Table, fn func(*row) T) ([]T, error) {
	idx := indexHeader(t.Header)
	out := make([]T, 0, len(t.Rows))
	for i, cells := range t.Rows {
		r := &row{path: path, line: i + 2, index: idx, cells: cells}
		rec := fn(r)
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, rec)
	}
	return out, nil
}

func readAll[T any](path string, fn func(*row) T) ([]T, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	return decodeRows(path, t, fn)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.TimeLayout)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}

// formatBool writes booleans capitalized, which strconv.ParseBool reads back.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func formatList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}
