package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/nocodb-client/internal/format"
	"github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
)

// NewPullCommand creates the pull command, exporting a table to a file.
func NewPullCommand() *cobra.Command {
	var (
		table      string
		query      queryFlags
		outputFile string
		fileFormat string
	)

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download the content of a table",
		Long:  "Download the records of a table into a CSV, JSON, or YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			records, err := client.List(context.Background(), query.toParams(cmd))
			if err != nil {
				return fmt.Errorf("failed to pull records: %w", err)
			}

			if fileFormat == "" && outputFile == "" {
				// Bare pull defaults to CSV on stdout.
				fileFormat = string(format.CSV)
			}

			return writeRecords(records, outputFile, fileFormat, newLogger())
		},
	}

	addTableFlag(cmd, &table)
	addQueryFlags(cmd, &query)
	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "path to output file")
	cmd.Flags().StringVarP(&fileFormat, "format", "f", "", "output format (csv, json, yaml)")

	return cmd
}

// NewTemplateCommand creates the template command, writing an empty file
// skeleton with the table's columns.
func NewTemplateCommand() *cobra.Command {
	var (
		table      string
		outputFile string
		fileFormat string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Generate an empty import template for a table",
		Long:  "Generate an empty CSV, JSON, or YAML template containing the column names of a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			records, err := client.List(context.Background(), nocodb.NewQueryParams().WithLimit(1))
			if err != nil {
				return fmt.Errorf("failed to inspect table: %w", err)
			}

			if len(records) == 0 {
				return fmt.Errorf("table '%s': %w", table, nocodb.ErrNoRecords)
			}

			if fileFormat == "" && outputFile == "" {
				fileFormat = string(format.CSV)
			}

			templateFormat, err := chooseFormat(outputFile, fileFormat, newLogger())
			if err != nil {
				return err
			}

			columns := format.Columns(records)

			if outputFile == "" {
				return format.WriteTemplate(os.Stdout, templateFormat, columns)
			}

			file, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer func() { _ = file.Close() }()

			return format.WriteTemplate(file, templateFormat, columns)
		},
	}

	addTableFlag(cmd, &table)
	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "path to output file")
	cmd.Flags().StringVarP(&fileFormat, "format", "f", "", "output format (csv, json, yaml)")

	return cmd
}
