package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sgostarter/libeasygo/pathutils"
	"github.com/spf13/cast"
)

const (
	degFile    = "deg.txt"
	tolFile    = "tol.txt"
	xFile      = "X.txt"
	yFile      = "Y.txt"
	errorsFile = "errors.txt"
)

func writeText(dir string, r record) (err error) {

	if err = pathutils.MustDirExists(dir); err != nil {
		return
	}

	if err = writeLines(filepath.Join(dir, degFile), []string{strconv.Itoa(r.degree)}); err != nil {
		return
	}

	if err = writeLines(filepath.Join(dir, tolFile), []string{formatFloat(r.tolerance)}); err != nil {
		return
	}

	if err = writeFloats(filepath.Join(dir, xFile), r.x); err != nil {
		return
	}

	if err = writeFloats(filepath.Join(dir, yFile), r.y); err != nil {
		return
	}

	errorsPath := filepath.Join(dir, errorsFile)

	if r.errors == nil {
		// A stale trace would be read back with the new knots.
		if err = os.Remove(errorsPath); err != nil && !os.IsNotExist(err) {
			return
		}
		return nil
	}

	return writeFloats(errorsPath, r.errors)
}

func readText(dir string) (r record, err error) {

	lines, err := readLines(filepath.Join(dir, degFile))
	if err != nil {
		return
	}

	if len(lines) != 1 {
		return r, fmt.Errorf("%s: expected a single value, got %d", degFile, len(lines))
	}

	if r.degree, err = cast.ToIntE(lines[0]); err != nil {
		return r, fmt.Errorf("%s: %w", degFile, err)
	}

	tol, err := readFloats(filepath.Join(dir, tolFile))
	if err != nil {
		return
	}

	if len(tol) != 1 {
		return r, fmt.Errorf("%s: expected a single value, got %d", tolFile, len(tol))
	}

	r.tolerance = tol[0]

	if r.x, err = readFloats(filepath.Join(dir, xFile)); err != nil {
		return
	}

	if r.y, err = readFloats(filepath.Join(dir, yFile)); err != nil {
		return
	}

	errorsPath := filepath.Join(dir, errorsFile)
	if _, statErr := os.Stat(errorsPath); statErr == nil {
		if r.errors, err = readFloats(errorsPath); err != nil {
			return
		}
	}

	return
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeFloats(path string, v []float64) error {
	lines := make([]string, len(v))
	for i := range v {
		lines[i] = formatFloat(v[i])
	}
	return writeLines(path, lines)
}

func writeLines(path string, lines []string) (err error) {

	f, err := os.Create(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return
	}

	w := bufio.NewWriter(f)

	for _, line := range lines {
		if _, err = w.WriteString(line + "\n"); err != nil {
			_ = f.Close()
			return
		}
	}

	if err = w.Flush(); err != nil {
		_ = f.Close()
		return
	}

	return f.Close()
}

// ReadColumns parses the text file at path, whose non-empty lines hold the same number of
// whitespace- or comma-separated values, and returns its columns. Lines starting with '#'
// are skipped.
func ReadColumns(path string) (columns [][]float64, err error) {

	lines, err := readLines(path)
	if err != nil {
		return
	}

	for i, line := range lines {

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})

		if columns == nil {
			columns = make([][]float64, len(fields))
		}

		if len(fields) != len(columns) {
			return nil, fmt.Errorf("%s:%d: expected %d values, got %d", path, i+1, len(columns), len(fields))
		}

		for j, field := range fields {
			var v float64
			if v, err = cast.ToFloat64E(field); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
			}
			columns[j] = append(columns[j], v)
		}
	}

	return
}

func readFloats(path string) (v []float64, err error) {

	columns, err := ReadColumns(path)
	if err != nil {
		return
	}

	switch len(columns) {
	case 0:
		return []float64{}, nil
	case 1:
		return columns[0], nil
	default:
		return nil, fmt.Errorf("%s: expected a single column, got %d", path, len(columns))
	}
}

func readLines(path string) (lines []string, err error) {

	f, err := os.Open(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	return lines, scanner.Err()
}
