// Command dugshgen walks a real directory and writes a transcript of cd/ls
// commands that dugsh can replay.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/michaelscutari/dugsh/internal/transcript"
)

func main() {
	dir := flag.String("dir", ".", "Directory to walk")
	out := flag.String("out", "", "Output file (default stdout)")
	maxDepth := flag.Int("max-depth", 0, "Max depth to descend (0 = unlimited)")
	quiet := flag.Bool("quiet", false, "Suppress the summary on stderr")
	flag.Parse()

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	start := time.Now()
	stats, err := transcript.Generate(w, os.DirFS(*dir), ".", transcript.GenerateOptions{MaxDepth: *maxDepth})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate error: %v\n", err)
		os.Exit(1)
	}

	if !*quiet {
		fmt.Fprintf(os.Stderr, "dir=%s dirs=%d files=%d bytes=%d skipped=%d elapsed=%s\n",
			*dir, stats.Dirs, stats.Files, stats.Bytes, stats.Skipped, time.Since(start))
	}
}
