package main

import (
	"fmt"

	"github.com/michaelscutari/dugsh/internal/rollup"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve FILE",
	Short: "Print the small-directory sum and the directory to delete",
	Long: `Replay FILE and print two numbers: the total size of all directories
at most --threshold bytes, and the size of the smallest directory whose
deletion leaves --required-free bytes free on a --capacity byte device.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	_, res, err := replayFile(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, rollup.SumSmallDirectories(res.Tree, cfg.Threshold))

	size, _, err := rollup.SmallestDirectoryAtLeast(res.Tree, cfg.Capacity, cfg.RequiredFree)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, size)
	return nil
}
