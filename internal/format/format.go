// Package format provides the CSV/JSON/YAML codecs used to move records
// between files and the API.
package format

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
)

// Format identifies a file format for record import and export.
type Format string

// Supported formats.
const (
	CSV  Format = "csv"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Static errors.
var (
	ErrUnknownFormat = errors.New("unknown format")
	ErrNoRecords     = errors.New("no records to encode")
)

// Parse converts a user-supplied format name, case-insensitively.
func Parse(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Detect derives the format from a file extension. The second return value
// reports whether the extension was recognized; unrecognized extensions
// fall back to YAML so callers can warn and proceed.
func Detect(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV, true
	case ".json":
		return JSON, true
	case ".yaml", ".yml":
		return YAML, true
	default:
		return YAML, false
	}
}

// DecodeRecords reads records from r in the given format. CSV input yields
// string-valued records keyed by the header row.
func DecodeRecords(r io.Reader, format Format) ([]nocodb.Record, error) {
	switch format {
	case CSV:
		return decodeCSV(r)
	case JSON:
		return decodeJSON(r)
	case YAML:
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// EncodeRecords writes records to w in the given format.
func EncodeRecords(w io.Writer, format Format, records []nocodb.Record) error {
	switch format {
	case CSV:
		return encodeCSV(w, records)
	case JSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(records)
	case YAML:
		return yaml.NewEncoder(w).Encode(records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteTemplate writes an empty skeleton for the given columns: a lone
// header row for CSV, an empty record for JSON and YAML.
func WriteTemplate(w io.Writer, format Format, columns []string) error {
	switch format {
	case CSV:
		writer := csv.NewWriter(w)

		err := writer.Write(columns)
		if err != nil {
			return fmt.Errorf("writing template header: %w", err)
		}

		writer.Flush()

		return writer.Error()
	case JSON, YAML:
		record := nocodb.Record{}
		for _, column := range columns {
			record[column] = nil
		}

		return EncodeRecords(w, format, []nocodb.Record{record})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Columns returns the union of field names across records, with the
// reserved id column first and the rest sorted for a stable layout.
func Columns(records []nocodb.Record) []string {
	seen := map[string]bool{}

	for _, record := range records {
		for key := range record {
			seen[key] = true
		}
	}

	hasID := seen[nocodb.IDField]
	delete(seen, nocodb.IDField)

	columns := make([]string, 0, len(seen)+1)
	for key := range seen {
		columns = append(columns, key)
	}

	sort.Strings(columns)

	if hasID {
		columns = append([]string{nocodb.IDField}, columns...)
	}

	return columns
}

func decodeCSV(r io.Reader) ([]nocodb.Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var records []nocodb.Record

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		record := nocodb.Record{}
		for i, column := range header {
			if i < len(row) {
				record[column] = row[i]
			}
		}

		records = append(records, record)
	}

	return records, nil
}

func decodeJSON(r io.Reader) ([]nocodb.Record, error) {
	var records []nocodb.Record

	err := json.NewDecoder(r).Decode(&records)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON records: %w", err)
	}

	return records, nil
}

func decodeYAML(r io.Reader) ([]nocodb.Record, error) {
	var records []nocodb.Record

	err := yaml.NewDecoder(r).Decode(&records)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("parsing YAML records: %w", err)
	}

	return records, nil
}

func encodeCSV(w io.Writer, records []nocodb.Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	columns := Columns(records)
	writer := csv.NewWriter(w)

	err := writer.Write(columns)
	if err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, record := range records {
		row := make([]string, 0, len(columns))

		for _, column := range columns {
			value := record[column]
			if value == nil {
				row = append(row, "")

				continue
			}

			row = append(row, fmt.Sprintf("%v", value))
		}

		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}
