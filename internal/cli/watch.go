package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/icpkit/canisterenv"
	"github.com/icpkit/canisterenv/internal/dfx"
	"github.com/icpkit/canisterenv/internal/envsynth"
	"github.com/icpkit/canisterenv/internal/logging"
)

// debounce absorbs the burst of events dfx emits while rewriting its
// registries (create temp, write, rename).
const debounce = 100 * time.Millisecond

// WatchOptions configure watch mode.
type WatchOptions struct {
	Tool    *canisterenv.Tool
	Network string
	Output  string
	Debug   bool
}

// RunWatch regenerates the env file whenever deployment metadata
// changes, until the context is cancelled.
func RunWatch(parent context.Context, opts WatchOptions) error {
	logger := NewLogger(opts.Debug)

	sigCtx := NewSignalContext(parent)
	defer sigCtx.Cancel()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	paths := dfx.MetadataPaths(opts.Tool.Dir(), opts.Network)
	watched := watchDirs(watcher, paths, logger)
	if watched == 0 {
		return fmt.Errorf("nothing to watch under %s", opts.Tool.Dir())
	}

	// Initial generation so the output exists before the first change.
	if err := regenerate(sigCtx, opts, logger); err != nil {
		logger.Error("Initial generation failed", "err", err)
	}

	logger.Info("Watching for metadata changes", "dir", opts.Tool.Dir(), "network", opts.Network)

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-sigCtx.Done():
			logger.Info("Stopping watcher (signal received)", "signal", sigCtx.Signal())
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, paths) {
				continue
			}
			logger.Debug("Change detected", "path", event.Name, "op", event.Op.String())
			// Reset the debounce window on every relevant event.
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := regenerate(sigCtx, opts, logger); err != nil {
				logger.Error("Regeneration failed", "err", err)
				continue
			}
			logger.Info("Env file regenerated", "output", opts.Output)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)
		}
	}
}

// watchDirs registers the parent directories of the metadata paths.
// Watching directories instead of files survives the rename dance dfx
// performs on write. Returns the number of directories registered.
func watchDirs(watcher *fsnotify.Watcher, paths []string, logger *slog.Logger) int {
	seen := make(map[string]bool)
	count := 0
	for _, path := range paths {
		dir := filepath.Dir(path)
		if seen[dir] {
			continue
		}
		seen[dir] = true

		if _, err := os.Stat(dir); err != nil {
			logger.Debug("Skipping absent directory", "dir", dir)
			continue
		}
		if err := watcher.Add(dir); err != nil {
			logger.Warn("Failed to watch directory", "dir", dir, "err", err)
			continue
		}
		count++
	}
	return count
}

func relevant(event fsnotify.Event, paths []string) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	for _, path := range paths {
		if filepath.Clean(event.Name) == filepath.Clean(path) {
			return true
		}
	}
	return false
}

func regenerate(ctx context.Context, opts WatchOptions, logger *slog.Logger) error {
	vars, err := opts.Tool.Generate(ctx, opts.Network)
	if err != nil {
		return err
	}

	if opts.Output == "" || opts.Output == "-" {
		fmt.Print(vars.Dotenv())
		return nil
	}

	return envsynth.WriteFile(opts.Output, vars)
}

// NewLogger configures the application logger. In debug mode it logs
// everything; otherwise info and above.
func NewLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelInfo)
}
