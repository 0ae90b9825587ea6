package models

import "errors"

var (
	// ErrTransferFailed — асинхронная потоковая передача вернула false.
	ErrTransferFailed = errors.New("transfer failed")
	// ErrIO — синхронная запись файла завершилась ошибкой ввода-вывода.
	ErrIO = errors.New("file write failed")
	// ErrBadRequest — запрос не удалось разобрать как ожидаемую multipart-форму.
	ErrBadRequest = errors.New("bad request")
)
