package handlers

import "net/http"

// Health reports process liveness only. It never touches the engine.
func Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]string{"status": "healthy"}, http.StatusOK)
}
