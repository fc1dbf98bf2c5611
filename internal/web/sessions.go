package web

import (
	"sync"

	"github.com/google/uuid"

	"github.com/oakhaus/decorator/internal/catalog"
	"github.com/oakhaus/decorator/internal/scene"
)

// sceneSession is one open decorator view: an ephemeral scene plus the
// catalog browser feeding it. Nothing here survives the session.
type sceneSession struct {
	id      string
	roomKey string
	scene   *scene.Scene
	browser *catalog.Browser
}

type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sceneSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*sceneSession)}
}

func (r *sessionRegistry) add(sess *sceneSession) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess.id = uuid.NewString()
	r.sessions[sess.id] = sess
	return sess.id
}

func (r *sessionRegistry) get(id string) (*sceneSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
