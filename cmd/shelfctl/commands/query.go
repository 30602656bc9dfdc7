package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/shelf/internal/cli/output"
	"github.com/marmos91/shelf/pkg/shelf"
	"github.com/marmos91/shelf/pkg/shelfbatch"
	"github.com/marmos91/shelf/pkg/shelfbehavior"
	"github.com/marmos91/shelf/pkg/shelfbuilder"
	"github.com/marmos91/shelf/pkg/shelftransport"
)

var (
	queryNamespace string
	querySet       string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run an ad-hoc scan against a local reference transport",
	Long: `query runs a Query op against an in-process LocalTransport — it never
talks to a real cluster. It exists so a behavior/config file can be
smoke-tested offline before pointing a real application at it.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryNamespace, "namespace", "test", "namespace to scan")
	queryCmd.Flags().StringVar(&querySet, "set", "", "set to scan")
}

func runQuery(cmd *cobra.Command, args []string) error {
	behavior := shelfbehavior.NewRoot()
	transport := shelftransport.NewLocalTransport()
	executor := shelfbatch.NewBatchExecutor(transport)
	session := shelfbuilder.NewSession(behavior, executor)

	ctx := cmd.Context()

	target := shelfbuilder.OnDataSet(shelf.NewDataSet(queryNamespace, querySet))
	stream, err := session.Query(target).Execute(ctx)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer stream.Close()

	results, err := stream.StreamView(ctx)
	if err != nil {
		return fmt.Errorf("draining results: %w", err)
	}

	table := output.NewTableData("KEY", "RESULT", "BINS")
	for _, r := range results {
		binCount := 0
		if r.Record != nil {
			binCount = len(r.Record.Bins)
		}
		table.AddRow(r.Key.String(), string(r.ResultCode), fmt.Sprintf("%d", binCount))
	}
	output.PrintTable(cmd.OutOrStdout(), table)
	fmt.Fprintf(cmd.OutOrStdout(), "%d record(s)\n", len(results))
	return nil
}
