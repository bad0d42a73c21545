package locale

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of filesystem events an editor save
// produces into a single reload.
const debounceDelay = 100 * time.Millisecond

// Watch hot-reloads the bundle directory until ctx is done. Create, write,
// and remove events on bundle files trigger a Reload; reload failures are
// logged and watching continues. Returns immediately with nil when no
// bundle directory is configured.
func (p *Provider) Watch(ctx context.Context) error {
	if p.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(p.dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				switch filepath.Ext(event.Name) {
				case ".json", ".yaml", ".yml":
				default:
					continue
				}

				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, func() {
					if err := p.Reload(); err != nil {
						slog.Warn("locale reload failed", "error", err)
					}
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("locale watcher error", "error", err)

			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}
