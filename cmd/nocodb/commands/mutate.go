package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/nocodb-client/internal/format"
	"github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
)

// NewPushCommand creates the push command, importing records from a file.
func NewPushCommand() *cobra.Command {
	var (
		table      string
		inputFile  string
		fileFormat string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload records from a file",
		Long:  "Upload the content of a CSV, JSON, or YAML file into a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecordsFile(inputFile, fileFormat)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No records to push")

				return nil
			}

			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			err = client.CreateBulk(context.Background(), records)
			if err != nil {
				return fmt.Errorf("failed to push records: %w", err)
			}

			fmt.Printf("Pushed %d record(s) to '%s'\n", len(records), table)

			return nil
		},
	}

	addTableFlag(cmd, &table)
	addInputFlags(cmd, &inputFile, &fileFormat)

	return cmd
}

// NewUpdateCommand creates the update command, bulk-updating records from a
// file. Each record has to carry the id of the row to modify.
func NewUpdateCommand() *cobra.Command {
	var (
		table      string
		inputFile  string
		fileFormat string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update records from a file",
		Long:  "Bulk-update table records from a CSV, JSON, or YAML file; every record has to contain the id of the row to change",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecordsFile(inputFile, fileFormat)
			if err != nil {
				return err
			}

			for _, record := range records {
				if _, ok := record.ID(); !ok {
					return fmt.Errorf("update input: %w", nocodb.ErrMissingRecordID)
				}
			}

			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			err = client.BulkUpdate(context.Background(), records)
			if err != nil {
				return fmt.Errorf("failed to update records: %w", err)
			}

			fmt.Printf("Updated %d record(s) in '%s'\n", len(records), table)

			return nil
		},
	}

	addTableFlag(cmd, &table)
	addInputFlags(cmd, &inputFile, &fileFormat)

	return cmd
}

// NewDeleteCommand creates the delete command for a single record.
func NewDeleteCommand() *cobra.Command {
	var (
		table string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a record",
		Long:  "Delete a single record identified by its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid record id %q: %w", args[0], err)
			}

			if !force {
				confirmed, err := defaultConfirmer.Confirm(
					fmt.Sprintf("Are you sure you want to delete record %d from '%s'? (y/N): ", id, table))
				if err != nil {
					return err
				}

				if !confirmed {
					fmt.Println("Deletion cancelled.")

					return nil
				}
			}

			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			err = client.Delete(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to delete record: %w", err)
			}

			fmt.Printf("Deleted record %d from '%s'\n", id, table)

			return nil
		},
	}

	addTableFlag(cmd, &table)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}

// addInputFlags registers the input file and format flags.
func addInputFlags(cmd *cobra.Command, inputFile, fileFormat *string) {
	cmd.Flags().StringVarP(inputFile, "input", "i", "", "path to input file")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVarP(fileFormat, "format", "f", "", "input format (csv, json, yaml)")
}

// readRecordsFile decodes records from a file, deriving the format from the
// flag or the file extension.
func readRecordsFile(path, formatName string) ([]nocodb.Record, error) {
	fileFormat, err := chooseFormat(path, formatName, newLogger())
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer func() { _ = file.Close() }()

	records, err := format.DecodeRecords(file, fileFormat)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return records, nil
}
