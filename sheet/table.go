package sheet

// This file contains code related to reading and writing the descriptor
// (the text table of named parts).

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// MaxNameLength is the longest part name accepted from a descriptor, in bytes.
const MaxNameLength = 255

// maxLineLength bounds a descriptor line. Longer lines are skipped whole.
const maxLineLength = 4096

// Table maps part names to their rectangles within a sheet's bitmap.
type Table map[string]Rect

// ParseTable reads a descriptor from r.
//
// Each line of the form "<name> <width> <height> <x> <y>" adds one entry.
// Lines that don't split into exactly five fields, or whose numeric fields
// aren't integers, are skipped without aborting the parse. Names longer than
// MaxNameLength, negative sizes and overly long lines are skipped too. When a
// name repeats, the last entry wins.
//
// Only a failure to read r is returned as an error.
func ParseTable(r io.Reader) (Table, error) {
	t := Table{}

	br := bufio.NewReaderSize(r, maxLineLength)
	lineNo := 0
	for {
		line, tooLong, err := readLine(br)
		if err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "reading descriptor after line %d", lineNo)
		}
		if err == io.EOF && len(line) == 0 && !tooLong {
			break
		}
		lineNo++

		if tooLong {
			glog.V(2).Infof("sheet: skipping descriptor line %d: longer than %d bytes", lineNo, maxLineLength)
		} else if name, rect, ok := parseLine(string(line)); !ok {
			if l := strings.TrimSpace(string(line)); l != "" {
				glog.V(2).Infof("sheet: skipping descriptor line %d: %q", lineNo, l)
			}
		} else {
			if old, dup := t[name]; dup {
				glog.V(1).Infof("sheet: descriptor line %d redefines %q (%v -> %v)", lineNo, name, old, rect)
			}
			t[name] = rect
		}

		if err == io.EOF {
			break
		}
	}
	return t, nil
}

// readLine returns the next line of br without its line terminator. A line
// that doesn't fit br's buffer is consumed up to and including its newline
// and reported as tooLong, with no content.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	line, err = br.ReadSlice('\n')
	for err == bufio.ErrBufferFull {
		tooLong = true
		_, err = br.ReadSlice('\n')
	}
	if tooLong {
		return nil, true, err
	}
	return bytes.TrimRight(line, "\r\n"), false, err
}

func parseLine(line string) (string, Rect, bool) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return "", Rect{}, false
	}
	name := fields[0]
	if len(name) > MaxNameLength {
		return "", Rect{}, false
	}

	var nums [4]int
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return "", Rect{}, false
		}
		nums[i] = n
	}
	// Field order on disk is width, height, x, y.
	rect := Rect{Width: nums[0], Height: nums[1], X: nums[2], Y: nums[3]}
	if rect.Width < 0 || rect.Height < 0 {
		return "", Rect{}, false
	}
	return name, rect, true
}

// Names returns the table's names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteTo writes t in descriptor form, one line per entry sorted by name.
// The output parses back into an equal table.
func (t Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, name := range t.Names() {
		r := t[name]
		n, err := fmt.Fprintf(bw, "%s %d %d %d %d\n", name, r.Width, r.Height, r.X, r.Y)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}
