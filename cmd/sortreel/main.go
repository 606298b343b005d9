// Command sortreel renders sorting and rotation algorithms as video.
//
// Usage:
//
//	sortreel list
//	sortreel render -a merge -d random -n 1024 -o merge.mp4
//	sortreel still -a heap --frame 5000 -o heap.png
//	sortreel all --dir reels --jobs 4
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "sortreel:", err)
		cancel()
		os.Exit(1)
	}
}
