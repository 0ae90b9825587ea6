package uploadhttp

import (
	"log/slog"
	"net/http"

	"github.com/sir_venger/upload_demo/internal/logger"
	"github.com/sir_venger/upload_demo/internal/models"
	"github.com/sir_venger/upload_demo/pkg/httperrors"
)

// finish фиксирует метрики и лог и отдаёт ответ: ошибка переводится в статус через httperrors.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, endpoint string, file models.UploadedFile, written int64, err error) {
	status := httperrors.Status(err)
	s.metrics.observe(endpoint, status, written)

	attrs := []slog.Attr{
		logger.Endpoint(endpoint),
		logger.Filename(file.Filename),
	}
	if file.ContentType != "" {
		attrs = append(attrs, slog.String("content_type", file.ContentType))
	}

	if err != nil {
		attrs = append(attrs, slog.Int("status", status), logger.Error(err))
		s.Log.LogAttrs(r.Context(), slog.LevelWarn, "upload failed", attrs...)
		httperrors.Write(w, err)
		return
	}

	attrs = append(attrs, slog.Int64("bytes", written))
	s.Log.LogAttrs(r.Context(), slog.LevelInfo, "file uploaded", attrs...)
	httperrors.WriteResult(w, models.Uploaded())
}

// reject отвечает ошибкой до того, как стало известно, какой файл загружается.
func (s *Server) reject(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	s.finish(w, r, endpoint, models.UploadedFile{}, 0, err)
}

// logAttribute пишет в debug необязательный атрибут формы; на результат загрузки он не влияет.
func (s *Server) logAttribute(r *http.Request, endpoint string, params models.UploadParams) {
	if params.AnotherAttribute == nil {
		return
	}
	s.Log.LogAttrs(r.Context(), slog.LevelDebug, "upload attribute",
		logger.Endpoint(endpoint),
		slog.String("another_attribute", *params.AnotherAttribute),
	)
}
