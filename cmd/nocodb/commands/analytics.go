package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewGroupByCommand creates the group-by command.
func NewGroupByCommand() *cobra.Command {
	var (
		table      string
		columnName string
		query      queryFlags
	)

	cmd := &cobra.Command{
		Use:   "group-by",
		Short: "Group records by a column",
		Long:  "Group the records of a table by a column and display the raw server result",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			params := query.toParams(cmd).WithColumnName(columnName)

			result, err := client.GroupBy(context.Background(), params)
			if err != nil {
				return fmt.Errorf("failed to group records: %w", err)
			}

			return renderRecords(result)
		},
	}

	addTableFlag(cmd, &table)
	addQueryFlags(cmd, &query)
	cmd.Flags().StringVar(&columnName, "column-name", "", "column name to group by")

	return cmd
}

// NewAggregateCommand creates the aggregate command.
func NewAggregateCommand() *cobra.Command {
	var (
		table      string
		columnName string
		funcs      []string
		having     string
		query      queryFlags
	)

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate records using functions",
		Long:  "Filter and aggregate the records of a table using functions (min, max, avg, sum, count)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createTableClient(table)
			if err != nil {
				return err
			}

			params := query.toParams(cmd).
				WithColumnName(columnName).
				WithFunc(funcs...).
				WithHaving(having)

			result, err := client.Aggregate(context.Background(), params)
			if err != nil {
				return fmt.Errorf("failed to aggregate records: %w", err)
			}

			return renderRecords(result)
		},
	}

	addTableFlag(cmd, &table)
	addQueryFlags(cmd, &query)
	cmd.Flags().StringVar(&columnName, "column-name", "", "column name to aggregate")
	cmd.Flags().StringSliceVar(&funcs, "func", nil, "aggregate function(s): min, max, avg, sum, count")
	cmd.Flags().StringVar(&having, "having", "", "having expression")

	return cmd
}
