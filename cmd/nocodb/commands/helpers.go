// Package commands implements the subcommands of the nocodb CLI.
package commands

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/nocodb-client/internal/config"
	"github.com/fivetwenty-io/nocodb-client/internal/format"
	"github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
	"github.com/fivetwenty-io/nocodb-client/pkg/nococlient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

const tokenMask = "***"

// Confirmer abstracts the interactive confirmation flow so destructive
// commands can be tested without a terminal.
type Confirmer interface {
	// Confirm asks a yes/no question and reports the answer.
	Confirm(prompt string) (bool, error)
	// Ask prompts for a free-form line of input.
	Ask(prompt string) (string, error)
}

// stdinConfirmer reads answers from standard input. The reader is shared
// across prompts so buffered-ahead input survives into the next question.
type stdinConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdinConfirmer creates a Confirmer reading from in and prompting on out.
func NewStdinConfirmer(in io.Reader, out io.Writer) Confirmer {
	return &stdinConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *stdinConfirmer) Confirm(prompt string) (bool, error) {
	answer, err := c.Ask(prompt)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (c *stdinConfirmer) Ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)

	// A partial final line (data plus EOF) is still a valid answer.
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// defaultConfirmer is swapped out by tests.
var defaultConfirmer Confirmer = NewStdinConfirmer(os.Stdin, os.Stdout)

// newLogger builds the CLI logger. Verbose mode enables debug output.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// zerologAdapter exposes a zerolog.Logger through the nocodb.Logger interface.
type zerologAdapter struct {
	logger zerolog.Logger
}

func (a *zerologAdapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug().Fields(fields).Msg(msg)
}

func (a *zerologAdapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info().Fields(fields).Msg(msg)
}

func (a *zerologAdapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn().Fields(fields).Msg(msg)
}

func (a *zerologAdapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error().Fields(fields).Msg(msg)
}

// resolveConnection determines the connection settings from the --config
// flag and the --url/--token flags (or their NOCO_URL/NOCO_TOKEN
// environment equivalents). Exactly one source must be provided.
func resolveConnection() (*config.Config, error) {
	return config.Resolve(
		viper.GetString("config"),
		viper.GetString("url"),
		viper.GetString("token"),
	)
}

// createTableClient builds an untyped table client for the given table.
func createTableClient(table string) (nocodb.TableClient[nocodb.Record], error) {
	if table == "" {
		return nil, nocodb.ErrTableRequired
	}

	conn, err := resolveConnection()
	if err != nil {
		return nil, err
	}

	logger := newLogger()

	return nococlient.New[nocodb.Record](&nocodb.Config{
		BaseURL:   nocodb.BuildURL(conn.BaseURL, table),
		AuthToken: conn.AuthToken,
		Debug:     viper.GetBool("verbose"),
		Logger:    &zerologAdapter{logger: logger},
	})
}

// addTableFlag registers the required --table flag.
func addTableFlag(cmd *cobra.Command, table *string) {
	cmd.Flags().StringVarP(table, "table", "t", "", "select the table")
	_ = cmd.MarkFlagRequired("table")
}

// queryFlags carries the common query-parameter flags.
type queryFlags struct {
	where   string
	limit   int
	offset  int
	sort    []string
	fields  []string
	fields1 []string
}

// addQueryFlags registers the query-parameter flags shared by listing
// commands.
func addQueryFlags(cmd *cobra.Command, flags *queryFlags) {
	cmd.Flags().StringVar(&flags.where, "where", "", "complicated where conditions")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "number of rows to get (SQL limit value)")
	cmd.Flags().IntVar(&flags.offset, "offset", 0, "offset for pagination (SQL offset value)")
	cmd.Flags().StringSliceVar(&flags.sort, "sort", nil, "sort by column name, use '-' prefix for descending sort")
	cmd.Flags().StringSliceVar(&flags.fields, "fields", nil, "required column names in result")
	cmd.Flags().StringSliceVar(&flags.fields1, "fields1", nil, "required column names in child result")
}

// toParams converts the flags to query parameters, leaving the limit unset
// when the flag was not changed so the client fetches all rows.
func (f *queryFlags) toParams(cmd *cobra.Command) *nocodb.QueryParams {
	params := nocodb.NewQueryParams().WithOffset(f.offset)

	if cmd.Flags().Changed("limit") {
		params.WithLimit(f.limit)
	}

	if f.where != "" {
		params.WithWhere(f.where)
	}

	params.Sort = f.sort
	params.Fields = f.fields
	params.Fields1 = f.fields1

	return params
}

// fuzzyFilter keeps the records where any field value fuzzy-matches the
// query. Filtering happens client-side on already-fetched records.
func fuzzyFilter(records []nocodb.Record, query string) []nocodb.Record {
	if query == "" {
		return records
	}

	matched := make([]nocodb.Record, 0, len(records))

	for _, record := range records {
		for _, value := range record {
			if value == nil {
				continue
			}

			if fuzzy.MatchFold(query, fmt.Sprintf("%v", value)) {
				matched = append(matched, record)

				break
			}
		}
	}

	return matched
}

// renderRecords writes records to stdout according to the --output flag:
// an aligned table by default, or JSON/YAML.
func renderRecords(records []nocodb.Record) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(records)
	case OutputFormatYAML:
		return yaml.NewEncoder(os.Stdout).Encode(records)
	default:
		if len(records) == 0 {
			fmt.Println("No records found")

			return nil
		}

		columns := format.Columns(records)

		table := tablewriter.NewWriter(os.Stdout)
		table.Header(toAnySlice(columns)...)

		for _, record := range records {
			row := make([]any, 0, len(columns))
			for _, column := range columns {
				row = append(row, formatValue(record[column]))
			}

			_ = table.Append(row...)
		}

		_ = table.Render()

		return nil
	}
}

// writeRecords writes records to a file in the given format, or renders
// them on stdout when no path is set.
func writeRecords(records []nocodb.Record, path, formatName string, logger zerolog.Logger) error {
	if path == "" && formatName == "" {
		return renderRecords(records)
	}

	fileFormat, err := chooseFormat(path, formatName, logger)
	if err != nil {
		return err
	}

	if path == "" {
		return format.EncodeRecords(os.Stdout, fileFormat, records)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return format.EncodeRecords(file, fileFormat, records)
}

// chooseFormat picks the file format from an explicit flag or the file
// extension. Unrecognized extensions warn and fall back to YAML.
func chooseFormat(path, formatName string, logger zerolog.Logger) (format.Format, error) {
	if formatName != "" {
		return format.Parse(formatName)
	}

	detected, known := format.Detect(path)
	if !known {
		logger.Warn().Str("path", path).Msg("unrecognized file extension, falling back to YAML")
	}

	return detected, nil
}

func formatValue(value any) string {
	if value == nil {
		return ""
	}

	return fmt.Sprintf("%v", value)
}

func toAnySlice(values []string) []any {
	result := make([]any, 0, len(values))
	for _, value := range values {
		result = append(result, value)
	}

	return result
}
