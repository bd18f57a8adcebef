package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var (
		table      string
		query      queryFlags
		fuzzyQuery string
		outputFile string
		fileFormat string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records of a table",
		Long:  "List the records of a table, optionally filtered, sorted, and paginated",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			records, err := client.List(context.Background(), query.toParams(cmd))
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			records = fuzzyFilter(records, fuzzyQuery)

			return writeRecords(records, outputFile, fileFormat, newLogger())
		},
	}

	addTableFlag(cmd, &table)
	addQueryFlags(cmd, &query)
	cmd.Flags().StringVarP(&fuzzyQuery, "query", "q", "", "client side fuzzy query")
	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "path to output file")
	cmd.Flags().StringVarP(&fileFormat, "format", "f", "", "output format (csv, json, yaml)")

	return cmd
}

// NewCountCommand creates the count command.
func NewCountCommand() *cobra.Command {
	var (
		table string
		where string
	)

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count records of a table",
		Long:  "Count the records of a table, optionally filtered by a where condition",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			count, err := client.Count(context.Background(), where)
			if err != nil {
				return fmt.Errorf("failed to count records: %w", err)
			}

			fmt.Println(count)

			return nil
		},
	}

	addTableFlag(cmd, &table)
	cmd.Flags().StringVar(&where, "where", "", "complicated where conditions")

	return cmd
}

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Get a record by id",
		Long:  "Display a single record identified by its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid record id %q: %w", args[0], err)
			}

			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			record, err := client.ByID(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get record: %w", err)
			}

			return renderRecords([]nocodb.Record{record})
		},
	}

	addTableFlag(cmd, &table)

	return cmd
}

// NewFindFirstCommand creates the find-first command.
func NewFindFirstCommand() *cobra.Command {
	var (
		table string
		query queryFlags
	)

	cmd := &cobra.Command{
		Use:   "find-first",
		Short: "Find the first matching record",
		Long:  "Get the first record matching the given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			record, err := client.FindFirst(context.Background(), query.toParams(cmd))
			if err != nil {
				return fmt.Errorf("failed to find record: %w", err)
			}

			return renderRecords([]nocodb.Record{record})
		},
	}

	addTableFlag(cmd, &table)
	addQueryFlags(cmd, &query)

	return cmd
}
