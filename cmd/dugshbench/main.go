// Command dugshbench times replay and index loading for a transcript at one
// or more loader batch sizes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/michaelscutari/dugsh/internal/replay"
)

func main() {
	file := flag.String("file", "", "Transcript to replay")
	batches := flag.String("batch", "1000,10000,50000", "Comma-separated loader batch sizes")
	runs := flag.Int("runs", 1, "Runs per batch size")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: dugshbench -file TRANSCRIPT [-batch N,...] [-runs N]")
		os.Exit(2)
	}

	var sizes []int
	for _, s := range strings.Split(*batches, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "invalid batch size %q\n", s)
			os.Exit(2)
		}
		sizes = append(sizes, n)
	}

	ctx := context.Background()
	mgr := replay.NewManager(nil)

	start := time.Now()
	res, err := mgr.RunFile(ctx, *file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay error: %v\n", err)
		os.Exit(1)
	}
	replayDur := time.Since(start)
	nodes := res.Tree.Len()

	fmt.Printf("file=%s lines=%d nodes=%d\n", *file, res.Meta.LineCount, nodes)
	fmt.Printf("replay: %v\n", replayDur)
	if replayDur.Seconds() > 0 {
		fmt.Printf("replay throughput: %.0f lines/sec\n", float64(res.Meta.LineCount)/replayDur.Seconds())
	}

	for _, size := range sizes {
		mgr.SetBatchSize(size)
		var total time.Duration
		for i := 0; i < *runs; i++ {
			start := time.Now()
			database, err := mgr.Index(ctx, res)
			if err != nil {
				fmt.Fprintf(os.Stderr, "index error: %v\n", err)
				os.Exit(1)
			}
			total += time.Since(start)
			database.Close()
		}
		avg := total / time.Duration(*runs)
		fmt.Printf("batch=%d index avg: %v", size, avg)
		if avg.Seconds() > 0 {
			fmt.Printf(" (%.0f rows/sec)", float64(nodes)/avg.Seconds())
		}
		fmt.Println()
	}
}
