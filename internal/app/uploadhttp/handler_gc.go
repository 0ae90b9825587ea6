package uploadhttp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sir_venger/upload_demo/internal/logger"
	"github.com/sir_venger/upload_demo/internal/usecase/uploadsvc"
)

const manualGCTTL = 24 * time.Hour

type gcResp struct {
	Removed int `json:"removed"`
}

// gcOnce вручную запускает удаление брошенных временных файлов.
func (s *Server) gcOnce(w http.ResponseWriter, r *http.Request) {
	ttl := s.Cfg.TempTTL
	if ttl <= 0 {
		ttl = manualGCTTL
	}

	removed, err := uploadsvc.SweepOnce(s.Uploads.Root(), ttl)
	if err != nil {
		s.Log.WarnContext(r.Context(), "manual gc failed", logger.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(gcResp{Removed: removed})
}
