package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watch reloads the config at path whenever the file is written and calls
// onChange with the result. Invalid configs are reported as errors; the
// caller keeps its previous config. The directory is watched rather than
// the file so that editors that save by rename are seen too.
//
// Watch returns once the watcher is set up; it stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watching config directory: %w", err)
	}

	log := logrus.WithField("component", "config-watcher")
	go watchLoop(ctx, watcher, path, DefaultDebounce, onChange, log)
	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, debounce time.Duration, onChange func(*Config, error), log *logrus.Entry) {
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(path)
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debugf("config event: %s op=%v", event.Name, event.Op)

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			cfg, err := LoadFrom(path)
			if err != nil {
				log.WithError(err).Warn("config reload failed")
			} else {
				log.Info("config reloaded")
			}
			onChange(cfg, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Error("config watcher error")

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
