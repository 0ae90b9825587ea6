// Package uploadproto описывает протокол HTTP-взаимодействия с сервисом загрузок:
// пути эндпоинтов, имена multipart-полей и тела ответов.
package uploadproto

// Пути эндпоинтов загрузки.
const (
	PathStream    = "/"
	PathCompleted = "/completed"
	PathBytes     = "/bytes"
)

// Имена полей multipart/form-data.
const (
	FieldFile             = "file"
	FieldAnotherAttribute = "anotherAttribute"
	FieldFileName         = "fileName"
)

// Тела ответов.
const (
	BodyUploaded     = "Uploaded"
	BodyUploadFailed = "Upload Failed"
)
