package snapshot

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reports the names of snapshots written by anyone, including other
// panels processes, until ctx is done. Writes within debounce of each other
// are reported once. The channel is closed when watching stops.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) (<-chan string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.baseDir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", s.baseDir, err)
	}
	if err := w.Add(s.baseDir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", s.baseDir, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer w.Close()

		pending := make(map[string]struct{})
		var timer *time.Timer
		var fire <-chan time.Time
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("watch %s: %v", s.baseDir, err)
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				name, ok := snapshotName(ev)
				if !ok {
					continue
				}
				pending[name] = struct{}{}
				if fire == nil {
					timer = time.NewTimer(debounce)
					fire = timer.C
				}
			case <-fire:
				fire = nil
				names := make([]string, 0, len(pending))
				for name := range pending {
					names = append(names, name)
				}
				clear(pending)
				slices.Sort(names)
				for _, name := range names {
					select {
					case out <- name:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()
	return out, nil
}

// snapshotName maps a create or write of <name>.json to name. Temp files
// from Save start with a dot and are skipped.
func snapshotName(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, ext) {
		return "", false
	}
	return strings.TrimSuffix(base, ext), true
}
