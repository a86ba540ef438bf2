package realtime

import (
	"io"
	"sync"
)

// Router tracks live websocket sessions and the views each one watches.
// A user may hold several sessions (one per tab); each session owns its views
// and closes them when it detaches.
type Router struct {
	mu           sync.RWMutex
	sessions     map[string]*Connection          // sessionID -> connection
	userSessions map[string]map[string]struct{}  // userID -> set of sessionIDs
	views        map[string]map[string]io.Closer // sessionID -> view key -> view
}

func NewRouter() *Router {
	return &Router{
		sessions:     make(map[string]*Connection),
		userSessions: make(map[string]map[string]struct{}),
		views:        make(map[string]map[string]io.Closer),
	}
}

// Attach registers conn and starts its write loop.
func (r *Router) Attach(conn *Connection) {
	r.mu.Lock()
	r.sessions[conn.ID] = conn
	set := r.userSessions[conn.UserID]
	if set == nil {
		set = make(map[string]struct{})
		r.userSessions[conn.UserID] = set
	}
	set[conn.ID] = struct{}{}
	r.views[conn.ID] = make(map[string]io.Closer)
	r.mu.Unlock()

	conn.Start()
}

// Detach forgets conn and closes every view it owned.
func (r *Router) Detach(conn *Connection) {
	r.mu.Lock()
	owned := r.detachLocked(conn.ID)
	r.mu.Unlock()
	closeAll(owned)
}

// Watch stores view under key for the session, closing any view it replaces.
// It reports false, and closes view, when the session is no longer attached.
func (r *Router) Watch(conn *Connection, key string, view io.Closer) bool {
	r.mu.Lock()
	owned, ok := r.views[conn.ID]
	if !ok {
		r.mu.Unlock()
		_ = view.Close()
		return false
	}
	prev := owned[key]
	owned[key] = view
	r.mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
	return true
}

// Unwatch closes and removes the view under key.
func (r *Router) Unwatch(conn *Connection, key string) bool {
	r.mu.Lock()
	view, ok := r.views[conn.ID][key]
	if ok {
		delete(r.views[conn.ID], key)
	}
	r.mu.Unlock()

	if ok {
		_ = view.Close()
	}
	return ok
}

// Watching lists the view keys held by the session.
func (r *Router) Watching(conn *Connection) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.views[conn.ID]))
	for k := range r.views[conn.ID] {
		keys = append(keys, k)
	}
	return keys
}

// NotifyUser delivers payload to every session of userID and returns how many accepted it.
func (r *Router) NotifyUser(userID string, payload []byte) int {
	r.mu.RLock()
	conns := make([]*Connection, 0, len(r.userSessions[userID]))
	for id := range r.userSessions[userID] {
		if c := r.sessions[id]; c != nil {
			conns = append(conns, c)
		}
	}
	r.mu.RUnlock()

	delivered := 0
	for _, c := range conns {
		if c.Send(payload) == nil {
			delivered++
		}
	}
	return delivered
}

func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close terminates all tracked connections and their views.
func (r *Router) Close() {
	r.mu.Lock()
	conns := make([]*Connection, 0, len(r.sessions))
	var owned []io.Closer
	for id, conn := range r.sessions {
		conns = append(conns, conn)
		owned = append(owned, r.detachLocked(id)...)
	}
	r.mu.Unlock()

	closeAll(owned)
	for _, conn := range conns {
		conn.Close(1001, "router shutdown")
	}
}

func (r *Router) detachLocked(sessionID string) []io.Closer {
	conn, ok := r.sessions[sessionID]
	if !ok {
		return nil
	}
	delete(r.sessions, sessionID)
	if set := r.userSessions[conn.UserID]; set != nil {
		delete(set, sessionID)
		if len(set) == 0 {
			delete(r.userSessions, conn.UserID)
		}
	}

	owned := make([]io.Closer, 0, len(r.views[sessionID]))
	for _, v := range r.views[sessionID] {
		owned = append(owned, v)
	}
	delete(r.views, sessionID)
	return owned
}

func closeAll(cs []io.Closer) {
	for _, c := range cs {
		_ = c.Close()
	}
}
