package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/gofiber/fiber/v3/log"
	"github.com/spf13/cobra"
)

// ============================================================
// watch
// ============================================================

const watchSettle = 100 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var flags outputFlags
	cmd := &cobra.Command{
		Use:   "watch FILE.svg",
		Short: "Regenerate the loader every time the SVG file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, &flags, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

// runWatch следит за каталогом файла: редакторы часто сохраняют через
// переименование, и наблюдение за самим файлом теряется.
func runWatch(ctx context.Context, cmd *cobra.Command, flags *outputFlags, path string) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	regenerate := func() {
		d, err := designFromSVG(target)
		if err != nil {
			log.Warnf("[WATCH] %v", err)
			return
		}
		if err := flags.generate(cmd, d); err != nil {
			log.Warnf("[WATCH] %v", err)
			return
		}
		log.Infof("[WATCH] regenerated from %s", filepath.Base(target))
	}
	regenerate()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	settle := debounce.New(watchSettle)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				settle(regenerate)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("[WATCH] %v", err)
		}
	}
}
