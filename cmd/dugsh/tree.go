package main

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/michaelscutari/dugsh/internal/fstree"
	"github.com/michaelscutari/dugsh/internal/rollup"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Print the replayed directory tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

var (
	treeSizes bool
	treeHuman bool
)

func init() {
	treeCmd.Flags().BoolVarP(&treeSizes, "sizes", "s", false, "Show effective directory sizes")
	treeCmd.Flags().BoolVarP(&treeHuman, "human", "H", false, "Print sizes in human-readable units")
}

func runTree(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	_, res, err := replayFile(ctx, args[0])
	if err != nil {
		return err
	}

	opts := fstree.DumpOptions{
		FormatSize: func(n int64) string { return strconv.FormatInt(n, 10) },
	}
	if treeHuman {
		opts.FormatSize = func(n int64) string { return humanize.Bytes(uint64(n)) }
	}
	if treeSizes {
		opts.DirSize = func(id fstree.ID) int64 { return rollup.EffectiveSize(res.Tree, id) }
	}
	return fstree.Dump(cmd.OutOrStdout(), res.Tree, opts)
}
