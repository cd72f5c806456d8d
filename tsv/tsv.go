// Package tsv reads tab-delimited text files one row at a time.
package tsv

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/klauspost/pgzip"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingHeader is returned when header mode is enabled but a file has no first line.
var ErrMissingHeader = errors.New("header requested but file is empty")

// FileAccessError reports an input file that could not be opened.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("could not open %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// MalformedRowError reports a line with too few fields for the requested join column.
type MalformedRowError struct {
	Path   string
	Line   int // 1-based line number in Path
	Col    int
	Fields int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s line %d: join column %d requested but line has %d fields", e.Path, e.Line, e.Col, e.Fields)
}

// Reader yields the lines of an input file, decompressed if needed.
type Reader struct {
	buf     *bufio.Reader
	closers []io.Closer // closed in order
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	var err, closeErr error
	for _, c := range r.closers {
		closeErr = c.Close()
		if err == nil {
			err = closeErr
		}
	}
	return err
}

// Open opens a plain or gzipped text file for reading. The name "stdin" reads standard input.
// Any other path is read from disk, even when fileio would treat its name as stdin or a URL.
func Open(path string) (*Reader, error) {
	if path == "stdin" {
		er := fileio.EasyOpen(path)
		return &Reader{buf: er.BuffReader, closers: []io.Closer{er}}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	if info.Mode().IsRegular() && info.Size() == 0 {
		return &Reader{buf: bufio.NewReader(strings.NewReader(""))}, nil
	}

	if strings.Contains(path, "http") {
		return openLocal(path)
	}

	diskPath := path
	if !filepath.IsAbs(path) && !strings.HasPrefix(path, "./") {
		diskPath = "./" + path // keeps names like stdin_wt.bed off fileio's stdin path
	}
	f, err := os.Open(diskPath)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	err = f.Close()
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	er := fileio.EasyOpen(diskPath)
	return &Reader{buf: er.BuffReader, closers: []io.Closer{er}}, nil
}

// openLocal reads path directly from disk, for names fileio.EasyOpen would fetch over the network.
func openLocal(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	if !strings.HasSuffix(path, ".gz") {
		return &Reader{buf: bufio.NewReader(f), closers: []io.Closer{f}}, nil
	}
	gz, err := pgzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, &FileAccessError{Path: path, Err: err}
	}
	return &Reader{buf: bufio.NewReader(gz), closers: []io.Closer{gz, f}}, nil
}

// NextRow reads the next line from r and splits it into fields.
// A final line lacking a newline is still returned as a row.
func NextRow(r *Reader) (row []string, done bool, err error) {
	var line string
	line, err = r.buf.ReadString('\n')
	switch {
	case err == io.EOF && line == "":
		return nil, true, nil
	case err != nil && err != io.EOF:
		return nil, true, err
	}
	return Split(line), false, nil
}

// Split trims the line ending, removes every double quote, and splits on tabs.
// Empty fields are kept.
func Split(line string) []string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	line = strings.ReplaceAll(line, "\"", "")
	return strings.Split(line, "\t")
}

// Key returns the field at col. lineNum and path are only used to describe a MalformedRowError.
func Key(row []string, col int, path string, lineNum int) (string, error) {
	if col < 0 || col >= len(row) {
		return "", &MalformedRowError{Path: path, Line: lineNum, Col: col, Fields: len(row)}
	}
	return row[col], nil
}

// JoinFields formats a followed by b as one tab-separated line without a newline.
func JoinFields(a, b []string) string {
	combined := slices.Grow(slices.Clip(a), len(b))
	combined = append(combined, b...)
	return strings.Join(combined, "\t")
}
