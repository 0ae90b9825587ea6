package uploadhttp

import (
	"encoding/json"
	"net/http"
)

// healthStats — payload ответа /health.
type healthStats struct {
	OK        bool   `json:"ok"`
	UploadDir string `json:"upload_dir"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(healthStats{OK: true, UploadDir: s.Uploads.Root()}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
