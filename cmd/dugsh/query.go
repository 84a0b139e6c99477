package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/michaelscutari/dugsh/internal/db"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query FILE",
	Short: "List a directory of the replayed tree",
	Long:  `Replay FILE and list the children of --path with their rolled-up sizes, for scripting.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

var (
	queryPath  string
	querySort  string
	queryLimit int
)

func init() {
	queryCmd.Flags().StringVarP(&queryPath, "path", "p", "/", "Directory path to list")
	queryCmd.Flags().StringVarP(&querySort, "sort", "s", "size", "Sort by: size, name, files")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 20, "Maximum number of results")
}

func runQuery(cmd *cobra.Command, args []string) error {
	switch querySort {
	case "size", "name", "files":
	default:
		return fmt.Errorf("invalid sort %q (expected size|name|files)", querySort)
	}

	ctx, cancel := signalContext()
	defer cancel()

	database, _, err := indexFile(ctx, args[0])
	if err != nil {
		return err
	}
	defer database.Close()

	entries, err := db.NewReader(database).LoadChildren(queryPath, querySort, queryLimit)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SIZE\tBYTES\tFILES\tDIRS\tKIND\tNAME\n")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			humanize.Bytes(uint64(e.TotalSize)),
			e.TotalSize,
			humanize.Comma(e.TotalFiles),
			humanize.Comma(e.TotalDirs),
			e.Kind,
			e.Name,
		)
	}
	return w.Flush()
}
