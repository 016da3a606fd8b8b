// Package scratch manages the CLI's temporary files (SPEC_FULL.md 4.13).
// The CLI stages its verbose dump in a scratch file before renaming it into
// place; the reader spools nothing here, since its grammar format carries
// no action or type-union text. Each scratch file gets a uuid-derived name
// so concurrent invocations of the CLI sharing the same TMPDIR never
// collide.
package scratch

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/google/uuid"
)

// Manager creates and tracks scratch files under a single directory,
// removing them all on Close.
type Manager struct {
	dir string

	mu    sync.Mutex
	files []string

	sigCh  chan os.Signal
	closed bool
}

// New returns a Manager that creates files under dir.
func New(dir string) *Manager {
	return &Manager{dir: dir}
}

// Create opens a new, uniquely-named scratch file tagged with label (used
// only to make the filename recognizable in a directory listing; it has no
// semantic meaning). The caller is responsible for closing the returned
// file; Manager unlinks it (whether or not it was closed) when the
// Manager itself is closed.
func (m *Manager) Create(label string) (*os.File, error) {
	name := fmt.Sprintf("yacgo-%s-%s", label, uuid.New().String())
	path := filepath.Join(m.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating scratch file: %w", err)
	}
	m.mu.Lock()
	m.files = append(m.files, path)
	m.mu.Unlock()
	return f, nil
}

// CloseOnSignal arms handling of SIGINT and SIGTERM so that scratch files
// are unlinked even if the process is interrupted mid-run. It returns a
// function that disarms the handler; callers should defer it alongside
// Close.
func (m *Manager) CloseOnSignal() (disarm func()) {
	m.sigCh = make(chan os.Signal, 1)
	signal.Notify(m.sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-m.sigCh:
			m.Close()
			os.Exit(1)
		case <-done:
		}
	}()
	return func() {
		close(done)
		signal.Stop(m.sigCh)
	}
}

// Close removes every scratch file this Manager has created. It is safe
// to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	var firstErr error
	for _, path := range m.files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
