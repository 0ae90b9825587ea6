package httperrors

import (
	"errors"
	"net/http"

	"github.com/sir_venger/upload_demo/internal/models"
)

// Write переводит ошибку загрузки в HTTP-ответ.
func Write(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, models.ErrTransferFailed):
		WriteResult(w, models.Failed(http.StatusConflict))
	case errors.Is(err, models.ErrIO):
		WriteResult(w, models.Failed(http.StatusBadRequest))
	case errors.As(err, &maxBytesErr):
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// WriteResult отдаёт UploadResult как text/plain без завершающего перевода строки.
func WriteResult(w http.ResponseWriter, res models.UploadResult) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(res.Status)
	_, _ = w.Write([]byte(res.Message))
}

// Status возвращает код ответа, который Write выставит для err.
func Status(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrTransferFailed):
		return http.StatusConflict
	case errors.Is(err, models.ErrIO):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
