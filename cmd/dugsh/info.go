package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/michaelscutari/dugsh/internal/rollup"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Display replay statistics and disk usage",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	_, res, err := replayFile(ctx, args[0])
	if err != nil {
		return err
	}
	meta := res.Meta
	space := rollup.SpaceNeeded(res.Tree, cfg.Capacity, cfg.RequiredFree)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Replay Information\n")
	fmt.Fprintf(out, "==================\n\n")
	fmt.Fprintf(out, "Source:       %s\n", meta.Source)
	fmt.Fprintf(out, "Lines:        %s\n", humanize.Comma(meta.LineCount))
	fmt.Fprintf(out, "Duration:     %s\n", meta.EndTime.Sub(meta.StartTime).Round(time.Microsecond))
	fmt.Fprintf(out, "\nTree\n")
	fmt.Fprintf(out, "----\n")
	fmt.Fprintf(out, "Files:        %s\n", humanize.Comma(meta.FileCount))
	fmt.Fprintf(out, "Directories:  %s\n", humanize.Comma(meta.DirCount))
	fmt.Fprintf(out, "Total Size:   %s (%d bytes)\n", humanize.Bytes(uint64(meta.TotalSize)), meta.TotalSize)
	fmt.Fprintf(out, "\nDevice\n")
	fmt.Fprintf(out, "------\n")
	fmt.Fprintf(out, "Capacity:     %d\n", space.Capacity)
	fmt.Fprintf(out, "Used:         %d\n", space.Used)
	fmt.Fprintf(out, "Free:         %d\n", space.Free)
	fmt.Fprintf(out, "Needed:       %d\n", space.Needed)
	fmt.Fprintf(out, "\nAnswers\n")
	fmt.Fprintf(out, "-------\n")
	fmt.Fprintf(out, "Small dirs (<= %d): %d\n", cfg.Threshold, rollup.SumSmallDirectories(res.Tree, cfg.Threshold))

	size, dir, err := rollup.SmallestDirectoryAtLeast(res.Tree, cfg.Capacity, cfg.RequiredFree)
	switch {
	case errors.Is(err, rollup.ErrNoCandidate):
		fmt.Fprintf(out, "Delete:       none qualifies\n")
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "Delete:       %s (%d)\n", res.Tree.Path(dir), size)
	}
	return nil
}
