package main

import (
	"errors"
	"fmt"
	"github.com/dasnellings/intersect/index"
	"github.com/dasnellings/intersect/join"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
)

var errMissingArgs = errors.New("missing required arguments")

type settings struct {
	file1, file2   string
	col1, col2     int
	header         bool
	warnDuplicates bool
	summary        bool
}

func usage() {
	fmt.Fprint(os.Stderr,
		"Usage: intersect <file1> <file2> <file1_col_idx> <file2_col_idx> [--header] [--warnDuplicates] [--summary]\n"+
			"\tExample: intersect WT.bed KO.bed 0 0\n")
}

// parseArgs accepts option flags anywhere in args, so --header may follow the positional arguments.
func parseArgs(args []string) (settings, error) {
	var s settings
	var positional []string
	var err error
	for _, a := range args {
		switch a {
		case "--header":
			s.header = true
		case "--warnDuplicates":
			s.warnDuplicates = true
		case "--summary":
			s.summary = true
		default:
			positional = append(positional, a)
		}
	}

	if len(positional) != 4 {
		return s, errMissingArgs
	}

	s.file1 = positional[0]
	s.file2 = positional[1]
	s.col1, err = strconv.Atoi(positional[2])
	if err != nil || s.col1 < 0 {
		return s, fmt.Errorf("ERROR: file1_col_idx must be a non-negative integer, found '%s'", positional[2])
	}
	s.col2, err = strconv.Atoi(positional[3])
	if err != nil || s.col2 < 0 {
		return s, fmt.Errorf("ERROR: file2_col_idx must be a non-negative integer, found '%s'", positional[3])
	}
	return s, nil
}

func main() {
	s, err := parseArgs(os.Args[1:])
	if err == errMissingArgs {
		usage()
		os.Exit(1)
	}
	if err != nil {
		errExit(err.Error())
	}

	// a closed stdout must surface as EPIPE on write rather than killing the process
	signal.Ignore(syscall.SIGPIPE)

	out := fileio.EasyCreate("stdout")
	err = intersect(s, out)
	if join.IsBrokenPipe(err) {
		os.Exit(0)
	}
	if err != nil {
		out.Close() // flush what was already joined before reporting the failure
		exception.PanicOnErr(err)
	}

	err = out.Close()
	if join.IsBrokenPipe(err) {
		os.Exit(0)
	}
	exception.PanicOnErr(err)
}

func intersect(s settings, out io.Writer) error {
	idx, err := index.BuildWithOptions(s.file1, s.col1, index.Options{Header: s.header, WarnDuplicates: s.warnDuplicates})
	if err != nil {
		return err
	}

	stats, err := join.Join(idx, s.file2, s.col2, s.header, out)
	if s.summary && err == nil {
		log.Printf("%s: indexed %d rows on column %d (%d distinct keys, %d duplicate keys overwritten)\n", s.file1, idx.LinesRead(), s.col1, idx.Len(), idx.Duplicates())
		log.Printf("%s: %d rows, %d matched, %d without a match\n", s.file2, stats.Rows, stats.Matched, stats.Missed)
	}
	return err
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
