package capture

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// Manager hands the physical camera to exactly one consumer at a time.
// Acquiring while another consumer holds the camera force-releases the
// current holder first, so two streams never run concurrently.
type Manager struct {
	factory func() VideoSource
	mu      sync.Mutex
	holder  string
	source  VideoSource
}

// Lease is the ownership handle returned by Acquire. All camera access
// goes through the lease; releasing it returns the device to the pool.
type Lease struct {
	manager  *Manager
	consumer string
	source   VideoSource
}

// NewManager creates a manager that opens sources via factory. The
// factory is invoked once per successful acquisition.
func NewManager(factory func() VideoSource) *Manager {
	return &Manager{factory: factory}
}

// Acquire opens the camera for the named consumer. Any current holder
// is closed first. On open failure nothing is held and the error wraps
// ErrCameraUnavailable when the device itself is the problem.
func (m *Manager) Acquire(consumer string) (*Lease, error) {
	if consumer == "" {
		return nil, errors.New("capture: acquire with empty consumer name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.source != nil {
		log.Printf("capture: %s preempts camera held by %s", consumer, m.holder)
		m.closeLocked()
	}

	source := m.factory()
	if err := source.Open(); err != nil {
		return nil, fmt.Errorf("acquire camera for %s: %w", consumer, err)
	}

	m.holder = consumer
	m.source = source

	return &Lease{manager: m, consumer: consumer, source: source}, nil
}

// Release closes the camera if the named consumer is the current
// holder. Releasing when somebody else holds it is a no-op.
func (m *Manager) Release(consumer string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.holder != consumer {
		return
	}
	m.closeLocked()
}

// ForceReleaseAll closes whatever is active regardless of holder. Safe
// to call at any time; with no active camera it does nothing.
func (m *Manager) ForceReleaseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.source == nil {
		return
	}
	log.Printf("capture: force releasing camera held by %s", m.holder)
	m.closeLocked()
}

// Holder returns the name of the current holder, or "" when the
// camera is free.
func (m *Manager) Holder() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.holder
}

// Active returns true while some consumer holds the camera.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source != nil
}

func (m *Manager) closeLocked() {
	if m.source == nil {
		return
	}
	if err := m.source.Close(); err != nil {
		log.Printf("capture: close camera held by %s: %v", m.holder, err)
	}
	m.source = nil
	m.holder = ""
}

// Release returns the camera if this lease is still the holder. A
// stale lease, one already preempted by a later Acquire, releases
// nothing.
func (l *Lease) Release() {
	l.manager.mu.Lock()
	defer l.manager.mu.Unlock()

	if l.manager.source == l.source && l.manager.holder == l.consumer {
		l.manager.closeLocked()
	}
}

// Source returns the video source this lease owns.
func (l *Lease) Source() VideoSource {
	return l.source
}

// Consumer returns the name the lease was acquired under.
func (l *Lease) Consumer() string {
	return l.consumer
}

// Active reports whether this lease still holds the camera.
func (l *Lease) Active() bool {
	l.manager.mu.Lock()
	defer l.manager.mu.Unlock()
	return l.manager.source == l.source && l.manager.holder == l.consumer
}
