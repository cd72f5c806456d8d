// Package join streams a tab-delimited file against an index and writes the inner join.
package join

import (
	"errors"
	"github.com/dasnellings/intersect/index"
	"github.com/dasnellings/intersect/tsv"
	"io"
	"syscall"
)

// ErrDownstreamClosed is returned when the output reader stops reading (e.g. a broken pipe into head or less).
// Callers should treat it as a normal end of output.
var ErrDownstreamClosed = errors.New("output closed by reader")

// Stats counts the rows seen in the streamed file.
type Stats struct {
	Rows    int // data rows, excluding the header
	Matched int
	Missed  int
}

// Join reads filename line by line, looks up column col of each row in idx,
// and writes the indexed row followed by the current row to out for every hit.
// Rows without a match are skipped. Output preserves the line order of filename.
func Join(idx *index.Index, filename string, col int, header bool, out io.Writer) (stats Stats, err error) {
	in, err := tsv.Open(filename)
	if err != nil {
		return stats, err
	}
	defer func() {
		closeErr := in.Close()
		if err == nil {
			err = closeErr
		}
	}()

	var row, match []string
	var key string
	var done, found bool
	var lineNum int

	if header {
		indexHeader, hasHeader := idx.Header()
		if !hasHeader {
			return stats, tsv.ErrMissingHeader
		}
		row, done, err = tsv.NextRow(in)
		if err != nil {
			return stats, err
		}
		if done {
			return stats, tsv.ErrMissingHeader
		}
		lineNum++
		if err = writeLine(out, tsv.JoinFields(indexHeader, row)); err != nil {
			return stats, err
		}
	}

	for row, done, err = tsv.NextRow(in); !done; row, done, err = tsv.NextRow(in) {
		lineNum++
		stats.Rows++
		key, err = tsv.Key(row, col, filename, lineNum)
		if err != nil {
			return stats, err
		}
		if match, found = idx.Lookup(key); !found {
			stats.Missed++
			continue
		}
		stats.Matched++
		if err = writeLine(out, tsv.JoinFields(match, row)); err != nil {
			return stats, err
		}
	}
	return stats, err
}

func writeLine(out io.Writer, line string) error {
	_, err := io.WriteString(out, line+"\n")
	if IsBrokenPipe(err) {
		return ErrDownstreamClosed
	}
	return err
}

// IsBrokenPipe reports whether err came from writing to a pipe with no reader.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, ErrDownstreamClosed)
}
