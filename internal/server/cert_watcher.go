package server

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"resumelens/internal/errors"
)

// CertWatcher observes certificate files on disk and calls back when any of
// them change. Events are debounced because renewals typically rewrite the
// cert and key within a short window, and a single reload should cover both.
type CertWatcher struct {
	mu sync.RWMutex

	certFile string
	keyFile  string
	caFile   string

	lastModTime map[string]time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	reloadCallback func()
	logger         *errors.Logger

	running bool
}

func NewCertWatcher(certFile, keyFile, caFile string, debounceDelay time.Duration, reloadCallback func(), logger *errors.Logger) (*CertWatcher, error) {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &CertWatcher{
		certFile:       certFile,
		keyFile:        keyFile,
		caFile:         caFile,
		lastModTime:    make(map[string]time.Time),
		debounceDelay:  debounceDelay,
		stopChan:       make(chan struct{}),
		reloadChan:     make(chan struct{}, 1),
		reloadCallback: reloadCallback,
		logger:         logger,
	}, nil
}

// watchedFiles returns the configured, non-empty certificate paths.
func (cw *CertWatcher) watchedFiles() []string {
	files := []string{}
	for _, f := range []string{cw.certFile, cw.keyFile, cw.caFile} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// Start registers the certificate paths with fsnotify and launches the event
// loop.
func (cw *CertWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		return fmt.Errorf("certificate watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cw.fsWatcher = watcher

	if err := cw.snapshotModTimes(); err != nil {
		if closeErr := cw.fsWatcher.Close(); closeErr != nil && cw.logger != nil {
			cw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
		return fmt.Errorf("failed to get initial file modification times: %w", err)
	}

	files := cw.watchedFiles()
	for _, file := range files {
		if err := cw.watchFile(file); err != nil && cw.logger != nil {
			cw.logger.Warn("Failed to watch certificate file", "file", file, "error", err)
		}
	}

	cw.running = true
	go cw.watchLoop()

	if cw.logger != nil {
		cw.logger.Info("Certificate file watcher started",
			"files", files,
			"debounce_delay", cw.debounceDelay)
	}
	return nil
}

// Stop shuts down the event loop and releases the fsnotify watcher.
func (cw *CertWatcher) Stop() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.running {
		return nil
	}

	close(cw.stopChan)

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}

	if cw.fsWatcher != nil {
		if err := cw.fsWatcher.Close(); err != nil {
			if cw.logger != nil {
				cw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	cw.running = false

	if cw.logger != nil {
		cw.logger.Info("Certificate file watcher stopped")
	}
	return nil
}

// watchFile registers a path with fsnotify. The parent directory is watched
// as well: atomic renewals write a temp file and rename it over the old one,
// which only produces directory events.
func (cw *CertWatcher) watchFile(file string) error {
	if err := cw.fsWatcher.Add(file); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to watch file %s: %w", file, err)
		}
		dir := filepath.Dir(file)
		if err := cw.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		if cw.logger != nil {
			cw.logger.Info("Watching directory for certificate file",
				"file", file, "directory", dir)
		}
	}

	if err := cw.fsWatcher.Add(filepath.Dir(file)); err != nil && cw.logger != nil {
		cw.logger.Warn("Failed to watch directory for atomic writes",
			"directory", filepath.Dir(file), "error", err)
	}
	return nil
}

// snapshotModTimes records the current modification time of every watched
// file so later events can be checked against a baseline.
func (cw *CertWatcher) snapshotModTimes() error {
	for _, file := range cw.watchedFiles() {
		stat, err := os.Stat(file)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat file %s: %w", file, err)
		}
		cw.lastModTime[file] = stat.ModTime()
	}
	return nil
}

// hasFileChanged stats a file and compares against the recorded baseline.
// Deletion counts as a change; the next reload will surface the error.
func (cw *CertWatcher) hasFileChanged(file string) bool {
	stat, err := os.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			if _, tracked := cw.lastModTime[file]; tracked {
				delete(cw.lastModTime, file)
				return true
			}
		}
		return false
	}

	last, tracked := cw.lastModTime[file]
	if !tracked || stat.ModTime().After(last) {
		cw.lastModTime[file] = stat.ModTime()
		return true
	}
	return false
}

func (cw *CertWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-cw.fsWatcher.Events:
			if !ok {
				return
			}
			if cw.isRelevantEvent(event) {
				cw.scheduleReload()
			}

		case err, ok := <-cw.fsWatcher.Errors:
			if !ok {
				return
			}
			if cw.logger != nil {
				cw.logger.LogError(err, "File watcher error")
			}

		case <-cw.reloadChan:
			if slices.ContainsFunc(cw.watchedFiles(), cw.hasFileChanged) {
				if cw.logger != nil {
					cw.logger.Info("Certificate files changed, triggering reload")
				}
				cw.reloadCallback()
			}

		case <-cw.stopChan:
			return
		}
	}
}

// isRelevantEvent filters the fsnotify stream down to write/create/rename
// events that touch one of the watched certificate names. Base-name matching
// covers directory events from atomic renames.
func (cw *CertWatcher) isRelevantEvent(event fsnotify.Event) bool {
	matched := false
	for _, file := range []string{cw.certFile, cw.keyFile, cw.caFile} {
		if file == "" {
			continue
		}
		if event.Name == file || filepath.Base(event.Name) == filepath.Base(file) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload arms (or re-arms) the debounce timer; when it fires, a
// single token is dropped into reloadChan.
func (cw *CertWatcher) scheduleReload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}

	cw.debounceTimer = time.AfterFunc(cw.debounceDelay, func() {
		select {
		case cw.reloadChan <- struct{}{}:
		default:
			// A reload is already pending.
		}
	})
}

func (cw *CertWatcher) IsRunning() bool {
	cw.mu.RLock()
	defer cw.mu.RUnlock()
	return cw.running
}

func (cw *CertWatcher) GetWatchedFiles() []string {
	return cw.watchedFiles()
}
