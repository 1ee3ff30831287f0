package handlers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Health provides a minimal liveness check endpoint.
func Health(log *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		res := map[string]string{"status": "ok"}
		writeJSON(log, w, r, http.StatusOK, res)
	}
}
