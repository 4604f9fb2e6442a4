package handlers

import (
	"net/http"
	"os"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// GetAppMinVersion tells clients the minimum supported app build so old
// installs can force an update prompt.
func (h *MetaHandler) GetAppMinVersion(w http.ResponseWriter, r *http.Request) {
	minVersion := os.Getenv("MIN_APP_VERSION")
	if minVersion == "" {
		minVersion = "1.0.0"
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"minVersion": minVersion})
}
