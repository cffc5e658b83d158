// Package export writes profile matrices as CSV tables with the wavelength
// header as the first row.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"hyperstack/pkg/profile"
)

// ErrShape is returned when a row does not match the header width
var ErrShape = errors.New("export: row width does not match header")

// Precision selects how data values are formatted
type Precision int

const (
	// Native writes the shortest representation that parses back exactly
	Native Precision = -1

	// Fixed2 writes exactly two decimals, matching profile.Precision
	Fixed2 Precision = profile.Precision
)

// Write serializes the header row followed by one row per position.
func Write(w io.Writer, header profile.WavelengthHeader, rows profile.Matrix, prec Precision) error {
	cw := csv.NewWriter(w)

	record := make([]string, len(header))
	for i, wl := range header {
		record[i] = strconv.Itoa(wl)
	}
	if err := cw.Write(record); err != nil {
		return err
	}

	for p, row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("%w: row %d has %d values, header has %d", ErrShape, p, len(row), len(header))
		}
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'f', int(prec), 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePair writes the raw and normalized tables. Both files are first
// written next to their targets and renamed into place only when both
// succeeded, so a failed run leaves neither file behind.
func WritePair(rawPath, normPath string, header profile.WavelengthHeader, raw, normalized profile.Matrix) error {
	rawTmp, err := writeTemp(rawPath, header, raw, Native)
	if err != nil {
		return fmt.Errorf("failed to write raw profile: %w", err)
	}
	defer os.Remove(rawTmp)

	normTmp, err := writeTemp(normPath, header, normalized, Fixed2)
	if err != nil {
		return fmt.Errorf("failed to write normalized profile: %w", err)
	}
	defer os.Remove(normTmp)

	if err := os.Rename(rawTmp, rawPath); err != nil {
		return fmt.Errorf("failed to move raw profile into place: %w", err)
	}
	if err := os.Rename(normTmp, normPath); err != nil {
		os.Remove(rawPath)
		return fmt.Errorf("failed to move normalized profile into place: %w", err)
	}
	return nil
}

func writeTemp(target string, header profile.WavelengthHeader, rows profile.Matrix, prec Precision) (string, error) {
	file, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return "", err
	}
	name := file.Name()

	if err := Write(file, header, rows, prec); err != nil {
		file.Close()
		os.Remove(name)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// ReadCSV parses a table written by Write back into its header and rows.
func ReadCSV(path string) (profile.WavelengthHeader, profile.Matrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s has no header row", path)
	}

	header := make(profile.WavelengthHeader, len(records[0]))
	for i, field := range records[0] {
		wl, err := strconv.Atoi(field)
		if err != nil {
			return nil, nil, fmt.Errorf("bad header value %q: %w", field, err)
		}
		header[i] = wl
	}

	rows := make(profile.Matrix, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad value %q: %w", field, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
