package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-render a trace document every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			return a.watch(cmd.Context(), args[0])
		},
	}
}

// watch renders path once and again after every write until ctx is done.
// Each pass starts from scratch; a bad document is reported and the watch
// goes on.
func (a *app) watch(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	// watch the directory so editors that replace the file are still seen
	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	a.logger.Debug("watching", "path", target)

	a.pass(target)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			a.pass(target)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", "error", err)
		}
	}
}

// pass renders path once, reporting failures to stderr.
func (a *app) pass(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		FormatError(a.stderr, err, a.color)
		return
	}
	doc, err := a.decode(path, data)
	if err != nil {
		FormatError(a.stderr, err, a.color)
		return
	}
	_, _ = fmt.Fprintf(a.stdout, "==> %s <==\n", path)
	if err := a.render(a.stdout, doc); err != nil {
		FormatError(a.stderr, err, a.color)
	}
}
