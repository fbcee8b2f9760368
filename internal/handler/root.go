package handler

import "net/http"

// HandleRoot is a liveness banner.
//
// HTTP: GET /
func HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "revista API is running"})
}

// HandleNotFound answers paths no route matches.
func HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "route not found"})
}

// HandleMethodNotAllowed answers a known path called with the wrong method.
func HandleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method_not_allowed", Message: "method not allowed"})
}
