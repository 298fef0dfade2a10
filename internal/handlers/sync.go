package handlers

import (
	"net/http"
)

// syncStatus returns the pollable connectivity and queue state
func (r *Router) syncStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.engine.Status())
}

// syncNow asks the engine for an immediate drain. The request returns as
// soon as the trigger is queued; progress shows up in /sync/status and on
// the websocket.
func (r *Router) syncNow(w http.ResponseWriter, req *http.Request) {
	r.engine.RequestSync()
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "requested"})
}
