package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/alichraghi/shady/internal/logging"
	"github.com/alichraghi/shady/internal/passdriver"
)

// newWatchCommand implements SPEC_FULL.md §2 A2's watch-mode driver:
// fsnotify watches a directory for shader-source changes and reruns
// the demo pipeline on each write, exiting cleanly on Ctrl-C (main
// binds SIGINT to the root command's context, whose Done channel is
// the loop's stop channel). Grounded on the
// teacher's own fsnotify dependency; this is the one background
// goroutine spec.md §5 calls out as needing an explicit stop path,
// exercised by cmd/shadyc's fortytw2/leaktest test.
func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "re-run the demo pipeline whenever files under <dir> change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCompilerConfig()
			if err != nil {
				return err
			}
			return runWatch(cfg, args[0], cmd.Context().Done())
		},
	}
	return cmd
}

func runWatch(cfg passdriver.Config, dir string, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("shadyc: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("shadyc: watch %s: %w", dir, err)
	}
	logging.Default.Infof("watching %s for changes", dir)

	for {
		select {
		case <-stop:
			logging.Default.Infof("watch: stopping")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logging.Default.Infof("change detected: %s, re-running demo pipeline", ev.Name)
			if err := runCompile(cfg, ""); err != nil {
				logging.Default.Errorf("pipeline run failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Default.Errorf("watcher: %v", err)
		}
	}
}
