package cli

import (
	"fmt"
)

// RunOptions contains all the configuration for the play command.
type RunOptions struct {
	CatalogPath string
	Class       string
	Headless    bool
	Watch       bool
	Debug       bool
	Budget      int
	MetricsAddr string
}

// Execute handles the 'play' command logic, dispatching to Session or Watch mode.
func Execute(opts RunOptions) error {
	if opts.Watch {
		if opts.Headless {
			return fmt.Errorf("--watch and --headless cannot be used together")
		}
		return RunWatch(opts)
	}
	return RunSession(opts)
}
