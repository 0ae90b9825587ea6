package models

import "io"

// UploadedFile описывает один загруженный файл. Filename приходит от клиента и не проверяется.
type UploadedFile struct {
	Filename    string
	ContentType string
}

// StreamingUpload — файл, содержимое которого ещё не прочитано из тела запроса.
// Reader читается ровно один раз.
type StreamingUpload struct {
	UploadedFile
	Reader io.Reader
}

// CompletedUpload — файл, содержимое которого уже целиком лежит в памяти.
type CompletedUpload struct {
	UploadedFile
	Data []byte
}

// UploadParams — параметры запросов на / и /completed.
type UploadParams struct {
	// AnotherAttribute равен nil, если поле не пришло.
	AnotherAttribute *string
}

// BytesParams — параметры запроса на /bytes: сырые байты и имя файла отдельным полем.
type BytesParams struct {
	File     []byte
	FileName string
}
