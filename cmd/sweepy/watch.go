package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joris-gallot/sweepy"
	"github.com/joris-gallot/sweepy/internal/config"
)

var (
	watchEntries    []string
	watchConfigPath string
	watchDebounce   time.Duration
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [project root]",
		Short: "Re-run the unused export report whenever source files change",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}

	cmd.Flags().StringSliceVarP(&watchEntries, "entry", "e", nil, "entry file, relative to the project root (repeatable)")
	cmd.Flags().StringVarP(&watchConfigPath, "config", "c", "", "path to a sweepy config file")
	cmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "how long to wait for a burst of changes to settle")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := args[0]
	if len(watchEntries) == 0 {
		return fmt.Errorf("at least one --entry is required")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	fw, err := newDebouncedWatcher(absRoot, watchDebounce)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fw.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func() {
		cfg, err := config.LoadConfig(watchConfigPath, root)
		if err != nil {
			pterm.Error.Printf("loading config: %v\n", err)
			return
		}
		report, err := sweepy.Analyze(ctx, root, watchEntries, cfg)
		if err != nil {
			pterm.Error.Printf("analyzing: %v\n", err)
			return
		}
		pterm.DefaultSection.Println(fmt.Sprintf("sweepy watch - %s", time.Now().Format(time.TimeOnly)))
		renderReport(report)
	}

	runOnce()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-fw.Changed():
			runOnce()
		}
	}
}

// debouncedWatcher watches a directory tree recursively and coalesces
// bursts of fsnotify events into a single signal.
type debouncedWatcher struct {
	watcher *fsnotify.Watcher
	changed chan struct{}
	window  time.Duration
	mu      sync.Mutex
	timer   *time.Timer
	done    chan struct{}
}

func newDebouncedWatcher(root string, window time.Duration) (*debouncedWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dw := &debouncedWatcher{
		watcher: watcher,
		changed: make(chan struct{}, 1),
		window:  window,
		done:    make(chan struct{}),
	}

	if err := dw.addTree(root); err != nil {
		watcher.Close()
		return nil, err
	}

	go dw.loop()
	return dw, nil
}

func (dw *debouncedWatcher) addTree(root string) error {
	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if shouldIgnoreDir(filepath.Base(p)) && p != root {
			return filepath.SkipDir
		}
		return dw.watcher.Add(p)
	})
}

func (dw *debouncedWatcher) Changed() <-chan struct{} {
	return dw.changed
}

func (dw *debouncedWatcher) Close() error {
	dw.mu.Lock()
	if dw.timer != nil {
		dw.timer.Stop()
	}
	dw.mu.Unlock()
	close(dw.done)
	return dw.watcher.Close()
}

func (dw *debouncedWatcher) loop() {
	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if shouldIgnoreDir(filepath.Base(event.Name)) {
				continue
			}
			dw.schedule()
		case _, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
		case <-dw.done:
			return
		}
	}
}

func (dw *debouncedWatcher) schedule() {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.timer != nil {
		dw.timer.Stop()
	}
	dw.timer = time.AfterFunc(dw.window, func() {
		select {
		case dw.changed <- struct{}{}:
		default:
		}
	})
}

func shouldIgnoreDir(name string) bool {
	switch name {
	case ".git", "node_modules", "dist", "build", ".cache":
		return true
	}
	return strings.HasPrefix(name, ".") && name != "."
}
