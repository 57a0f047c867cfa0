package handler

import (
	"net/http"

	"github.com/cassiohm/mediafeed/consts"
)

// HandlerIndex reports the service name and build information.
func HandlerIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, map[string]interface{}{
		"service": "mediafeed",
		"build":   consts.GetBuildInfo(),
	})
}

// HandlerHealthz is the liveness probe.
func HandlerHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
