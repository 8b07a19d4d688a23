package relay

import (
	"sync"
	"time"

	"github.com/delta-vision/deltaterm/pkg/logger"
	"go.uber.org/zap"
)

// Registry is the process-wide session table. It exists for enumeration
// and broadcast shutdown only; per-byte data flow never touches it. The
// lock guards O(1) map operations and is never held across I/O.
type Registry struct {
	mutex    sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

func (registry *Registry) Insert(session *Session) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	registry.sessions[session.ID] = session
}

func (registry *Registry) Remove(id string) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	delete(registry.sessions, id)
}

func (registry *Registry) Find(id string) *Session {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	return registry.sessions[id]
}

func (registry *Registry) List() []Info {
	registry.mutex.Lock()
	sessions := make([]*Session, 0, len(registry.sessions))
	for _, session := range registry.sessions {
		sessions = append(sessions, session)
	}
	registry.mutex.Unlock()

	infos := make([]Info, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, session.Describe())
	}

	return infos
}

func (registry *Registry) Len() int {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	return len(registry.sessions)
}

// Drain tears every session down and waits up to bound for each to reach
// STATE_CLOSED. A session that fails to close within the bound is logged
// and skipped: one wedged child must not block overall shutdown.
func (registry *Registry) Drain(bound time.Duration) {
	registry.mutex.Lock()
	sessions := make([]*Session, 0, len(registry.sessions))
	for _, session := range registry.sessions {
		sessions = append(sessions, session)
	}
	registry.mutex.Unlock()

	// Teardowns run concurrently: each one burns its own grace period
	// on an unwilling child, and those must not serialize.
	for _, session := range sessions {
		go session.Teardown("server shutting down")
	}

	for _, session := range sessions {
		select {
		case <-session.Done():
		case <-time.After(bound):
			logger.Log.Warn("session did not close within drain bound",
				zap.String("session", session.ID))
		}
	}
}
