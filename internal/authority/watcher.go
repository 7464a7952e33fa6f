package authority

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Editors save in bursts of 4-8 events; collapse each burst into one
// reload per debounce window.
const reloadDebounce = 500 * time.Millisecond

func (a *Authority) watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	for _, dir := range a.dirs {
		if err := w.Add(dir); err != nil {
			a.log.Warn("error monitoring directory", "dir", dir, "err", err)
		}
	}
	a.watcher = w
	a.done = make(chan struct{})
	go a.watchLoop()
	return nil
}

func (a *Authority) watchLoop() {
	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case ev, ok := <-a.watcher.Events:
			if !ok {
				return
			}
			if !relevantEvent(ev) {
				continue
			}
			a.log.Info("rules changed, scheduling reload", "file", ev.Name)
			if armed && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(reloadDebounce)
			armed = true

		case err, ok := <-a.watcher.Errors:
			if !ok {
				return
			}
			a.log.Warn("watch error", "err", err)

		case <-timer.C:
			if !armed {
				continue
			}
			armed = false
			a.log.Info("reloading rules")
			a.Reload()

		case <-a.done:
			return
		}
	}
}

func relevantEvent(ev fsnotify.Event) bool {
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "#") {
		return false
	}
	if !strings.HasSuffix(base, rulesSuffix) {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
