package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/observability"
)

// LoadSeed replaces the catalog with the plans in a JSON seed file
// (an array of domain.Plan objects).
func (s *Store) LoadSeed(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var plans []domain.Plan
	if err := json.Unmarshal(raw, &plans); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}

	valid := plans[:0]
	for _, p := range plans {
		if p.ID == "" || !p.Category.Valid() {
			observability.LoggerFromContext(ctx).Warn("skipping invalid seed plan",
				"plan_id", p.ID, "category", p.Category)
			continue
		}
		valid = append(valid, p)
	}

	if err := s.ReplaceAll(ctx, valid); err != nil {
		return err
	}
	observability.LoggerFromContext(ctx).Info("catalog seeded", "plans", len(valid), "file", path)
	return nil
}

// WatchSeed reloads the seed file whenever it changes, until ctx is done.
// Editors replace files with rename+create, so both write and create events
// trigger a reload, debounced briefly to skip half-written files.
func (s *Store) WatchSeed(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		log := observability.Logger().With("seed_file", path)

		var timer *time.Timer
		reload := func() {
			if err := s.LoadSeed(ctx, path); err != nil {
				log.Error("seed reload failed", "error", err)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.EqualFold(filepath.Clean(event.Name), filepath.Clean(path)) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(300*time.Millisecond, reload)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("watcher error", "error", err)
			}
		}
	}()

	return nil
}
