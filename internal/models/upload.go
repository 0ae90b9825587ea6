package models

import (
	"net/http"

	"github.com/sir_venger/upload_demo/pkg/uploadproto"
)

// UploadResult — итог обработки загрузки: Success (200) или Failure с собственным статусом.
type UploadResult struct {
	Status  int
	Message string
}

// Uploaded возвращает успешный результат.
func Uploaded() UploadResult {
	return UploadResult{Status: http.StatusOK, Message: uploadproto.BodyUploaded}
}

// Failed возвращает неуспешный результат с указанным статусом.
func Failed(status int) UploadResult {
	return UploadResult{Status: status, Message: uploadproto.BodyUploadFailed}
}
