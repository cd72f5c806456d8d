package index

import (
	"github.com/dasnellings/intersect/tsv"
	"log"
)

// Index maps the value of a join column to the full row it came from.
// The header, if any, is held apart from the keyed rows so no data value can collide with it.
type Index struct {
	rows       map[string][]string // keyed on join column value, last write wins
	header     []string
	hasHeader  bool
	linesRead  int // data lines, excluding the header
	duplicates int // data lines that replaced an earlier row with the same key
}

// Options modify how Build handles the indexed file.
type Options struct {
	Header         bool // first line is a header
	WarnDuplicates bool // log each key that overwrites an earlier row
}

// Build reads all of filename and indexes each row on column col (zero-based).
// If header is true the first line is stored as the header and is not indexed.
func Build(filename string, col int, header bool) (*Index, error) {
	return BuildWithOptions(filename, col, Options{Header: header})
}

// BuildWithOptions is Build with the full set of Options.
func BuildWithOptions(filename string, col int, opts Options) (idx *Index, err error) {
	in, err := tsv.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		closeErr := in.Close()
		if err == nil {
			err = closeErr
		}
	}()

	idx = &Index{rows: make(map[string][]string)}

	var row []string
	var key string
	var done, found bool
	var lineNum int

	if opts.Header {
		row, done, err = tsv.NextRow(in)
		if err != nil {
			return nil, err
		}
		if done {
			return nil, tsv.ErrMissingHeader
		}
		lineNum++
		idx.header = row
		idx.hasHeader = true
	}

	for row, done, err = tsv.NextRow(in); !done; row, done, err = tsv.NextRow(in) {
		lineNum++
		key, err = tsv.Key(row, col, filename, lineNum)
		if err != nil {
			return nil, err
		}
		if _, found = idx.rows[key]; found {
			idx.duplicates++
			if opts.WarnDuplicates {
				log.Printf("WARNING: key '%s' on line %d of %s replaces an earlier row with the same key.\n", key, lineNum, filename)
			}
		}
		idx.rows[key] = row
		idx.linesRead++
	}
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Lookup returns the row indexed under key.
func (idx *Index) Lookup(key string) ([]string, bool) {
	row, found := idx.rows[key]
	return row, found
}

// Header returns the header row and whether one was read.
func (idx *Index) Header() ([]string, bool) {
	return idx.header, idx.hasHeader
}

// Len is the number of distinct keys.
func (idx *Index) Len() int {
	return len(idx.rows)
}

// LinesRead is the number of data lines read, including those later overwritten.
func (idx *Index) LinesRead() int {
	return idx.linesRead
}

// Duplicates is the number of data lines whose key had already been seen.
func (idx *Index) Duplicates() int {
	return idx.duplicates
}
