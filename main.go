// Command gitstats reports per-author contribution statistics for a Git repository.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/gitstats/cmd"
	"github.com/huangsam/gitstats/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		_, _ = fmt.Fprintln(os.Stderr, stopErr)
	}
	iocache.CloseStores()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
