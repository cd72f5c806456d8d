package tsv

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	var tests = []struct {
		line     string
		expected []string
	}{
		{"a\tb\tc\n", []string{"a", "b", "c"}},
		{"a\tb\r\n", []string{"a", "b"}},
		{"\"a\"\t\"b c\"\n", []string{"a", "b c"}},
		{"a\t\tc\t\n", []string{"a", "", "c", ""}},
		{"\n", []string{""}},
		{"no newline", []string{"no newline"}},
	}

	var actual []string
	for _, test := range tests {
		actual = Split(test.line)
		if strings.Join(actual, "|") != strings.Join(test.expected, "|") || len(actual) != len(test.expected) {
			t.Errorf("problem splitting %q. expected %q, got %q", test.line, test.expected, actual)
		}
	}
}

func TestKey(t *testing.T) {
	row := []string{"chr1", "100", "200"}
	key, err := Key(row, 2, "test.tsv", 1)
	if err != nil || key != "200" {
		t.Error("problem getting key from column 2:", key, err)
	}

	var malformed *MalformedRowError
	_, err = Key(row, 3, "test.tsv", 7)
	if !errors.As(err, &malformed) {
		t.Fatal("expected MalformedRowError, got", err)
	}
	if malformed.Line != 7 || malformed.Fields != 3 || malformed.Col != 3 {
		t.Error("malformed row error has wrong details:", malformed)
	}

	_, err = Key(row, -1, "test.tsv", 1)
	if !errors.As(err, &malformed) {
		t.Error("expected MalformedRowError for negative column, got", err)
	}
}

func TestJoinFields(t *testing.T) {
	a := make([]string, 2, 10)
	a[0], a[1] = "A", "B"
	b := []string{"C", "D"}
	if actual := JoinFields(a, b); actual != "A\tB\tC\tD" {
		t.Errorf("expected %q, got %q", "A\tB\tC\tD", actual)
	}
	if len(a) != 2 || a[:3][2] != "" {
		t.Error("JoinFields modified the backing array of its first argument")
	}

	if actual := JoinFields([]string{""}, b); actual != "\tC\tD" {
		t.Errorf("expected empty leading field, got %q", actual)
	}
}

func TestOpen(t *testing.T) {
	_, err := Open("testdata/doesNotExist.tsv")
	var accessErr *FileAccessError
	if !errors.As(err, &accessErr) {
		t.Fatal("expected FileAccessError, got", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("FileAccessError does not unwrap to os.ErrNotExist:", err)
	}
}

func TestNextRow(t *testing.T) {
	in, err := Open("testdata/noFinalNewline.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	var rows [][]string
	var row []string
	var done bool
	for row, done, err = NextRow(in); !done; row, done, err = NextRow(in) {
		rows = append(rows, row)
	}
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %q", len(rows), rows)
	}
	if strings.Join(rows[0], "|") != "chr1|100|gene A" {
		t.Error("problem reading quoted row:", rows[0])
	}
	if strings.Join(rows[1], "|") != "chr2|200" {
		t.Error("last line without a newline was not read:", rows[1])
	}
}

func readAll(t *testing.T, path string) []string {
	in, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	var lines []string
	var row []string
	var done bool
	for row, done, err = NextRow(in); !done; row, done, err = NextRow(in) {
		lines = append(lines, strings.Join(row, "|"))
	}
	if err != nil {
		t.Fatal(err)
	}
	err = in.Close()
	if err != nil {
		t.Fatal(err)
	}
	return lines
}

func TestOpenReservedNames(t *testing.T) {
	expected := "k1|x\nk2|y"

	// relative names beginning with stdin must still be read from disk
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	err = os.Chdir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	lines := readAll(t, "stdin_x.tsv")
	err = os.Chdir(wd)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(lines, "\n") != expected {
		t.Errorf("problem reading stdin_x.tsv. expected %q, got %q", expected, lines)
	}

	for _, path := range []string{"testdata/http_x.tsv", "testdata/http_x.tsv.gz"} {
		lines = readAll(t, path)
		if strings.Join(lines, "\n") != expected {
			t.Errorf("problem reading %s. expected %q, got %q", path, expected, lines)
		}
	}

	_, err = Open("testdata/http_missing.tsv")
	var accessErr *FileAccessError
	if !errors.As(err, &accessErr) {
		t.Error("expected FileAccessError for missing http file, got", err)
	}
}

func TestOpenEmpty(t *testing.T) {
	if lines := readAll(t, "testdata/empty.tsv"); len(lines) != 0 {
		t.Error("rows read from an empty file:", lines)
	}
}
