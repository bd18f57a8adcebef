package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
)

// NewPurgeCommand creates the purge command, deleting all records of a
// table. The operation is destructive and cannot be undone, so it demands
// an acknowledgement plus re-typing the table name; any negative answer
// aborts with a clean exit.
func NewPurgeCommand() *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all records of a table",
		Long:  "Delete every record of a table after two explicit confirmations",
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed, err := defaultConfirmer.Confirm(
				fmt.Sprintf("This deletes ALL records in '%s' and cannot be undone. Continue? (y/N): ", table))
			if err != nil {
				return err
			}

			if !confirmed {
				fmt.Println("Aborted.")

				return nil
			}

			answer, err := defaultConfirmer.Ask(
				fmt.Sprintf("Type the table name ('%s') to confirm: ", table))
			if err != nil {
				return err
			}

			if answer != table {
				fmt.Println("Aborted.")

				return nil
			}

			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			ctx := context.Background()

			records, err := client.List(ctx, nocodb.NewQueryParams().WithFields(nocodb.IDField))
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			ids := make([]int, 0, len(records))

			for _, record := range records {
				id, ok := record.ID()
				if !ok {
					return fmt.Errorf("purge: %w", nocodb.ErrMissingRecordID)
				}

				ids = append(ids, id)
			}

			if len(ids) == 0 {
				fmt.Println("Table is already empty.")

				return nil
			}

			err = client.BulkDelete(ctx, ids)
			if err != nil {
				return fmt.Errorf("failed to purge table: %w", err)
			}

			fmt.Printf("Deleted %d record(s) from '%s'\n", len(ids), table)

			return nil
		},
	}

	addTableFlag(cmd, &table)

	return cmd
}
