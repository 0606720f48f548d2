package watcher

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-power-overlay/internal/util"
)

// FileEvent is a change to a watched file.
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher reports writes to a fixed set of files.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	events  chan FileEvent
	stop    chan struct{}
	once    sync.Once
}

// NewFileWatcher watches the given files. Their parent directories are
// watched so that editors replacing the file are still noticed.
func NewFileWatcher(files []string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		files:   make(map[string]bool),
		events:  make(chan FileEvent, 100),
		stop:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.matches(event) {
				continue
			}
			select {
			case fw.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.stop:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())

		case <-fw.stop:
			return
		}
	}
}

func (fw *FileWatcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return fw.files[abs]
}

// Events returns the channel of file change events. It is closed after Close.
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

// Close stops event delivery, even when nobody is reading Events, and
// releases the underlying watcher.
func (fw *FileWatcher) Close() error {
	fw.halt()
	return fw.watcher.Close()
}

func (fw *FileWatcher) halt() {
	fw.once.Do(func() { close(fw.stop) })
}
