package web

import (
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// changeHub fans a "something changed" tick out to every open /events stream.
type changeHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newChangeHub() *changeHub {
	return &changeHub{subs: map[chan struct{}]struct{}{}}
}

func (h *changeHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
			h.mu.Unlock()
		})
	}
}

func (h *changeHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *changeHub) closeAll() {
	h.mu.Lock()
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// dirWatcher notifies subscribers when files in the photo folder are added,
// removed, renamed or rewritten. Bursts are coalesced into one tick.
type dirWatcher struct {
	dir      string
	debounce time.Duration
	log      *zap.Logger
	fs       *fsnotify.Watcher
	hub      *changeHub

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newDirWatcher(dir string, debounce time.Duration, log *zap.Logger) (*dirWatcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w := &dirWatcher{
		dir:      dir,
		debounce: debounce,
		log:      log,
		fs:       fsw,
		hub:      newChangeHub(),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *dirWatcher) subscribe() (<-chan struct{}, func()) {
	return w.hub.subscribe()
}

func (w *dirWatcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.fs.Close()
		<-w.doneCh
		w.hub.closeAll()
	})
	return err
}

func (w *dirWatcher) loop() {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			w.log.Debug("photo folder changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("photo folder watch error", zap.Error(err))
		case <-fire:
			fire = nil
			w.hub.broadcast()
		}
	}
}
