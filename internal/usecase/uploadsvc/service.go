package uploadsvc

import (
	"context"
	"log/slog"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/sir_venger/upload_demo/internal/logger"
	"github.com/sir_venger/upload_demo/internal/models"
)

const tracerName = "github.com/sir_venger/upload_demo/internal/usecase/uploadsvc"

type (
	// Transferer запускает асинхронную потоковую запись файла.
	Transferer interface {
		Transfer(ctx context.Context, file models.StreamingUpload) *Transfer
	}

	// Writer синхронно записывает файл, уже прочитанный в память.
	Writer interface {
		WriteCompleted(ctx context.Context, file models.CompletedUpload) error
		WriteBytes(ctx context.Context, params models.BytesParams) error
	}

	// Service объединяет все три варианта загрузки.
	Service interface {
		Transferer
		Writer
		Root() string
	}
)

type Deps struct {
	// Dir — каталог, относительно которого разрешаются имена файлов.
	// Пустая строка — рабочий каталог процесса, имя используется как есть.
	Dir    string
	Log    *slog.Logger
	Tracer trace.Tracer
}

type Files struct {
	Deps
}

// New конструирует сервис загрузок с заданными зависимостями.
func New(deps Deps) *Files {
	if deps.Log == nil {
		deps.Log = logger.Discard()
	}
	if deps.Tracer == nil {
		deps.Tracer = otel.Tracer(tracerName)
	}
	return &Files{Deps: deps}
}

var _ Service = (*Files)(nil)

// Root возвращает каталог назначения.
func (s *Files) Root() string {
	return s.Dir
}

// resolve строит путь назначения из имени, присланного клиентом.
// Имя не санируется: "../" позволяет выйти за пределы Dir. Абсолютный путь
// при заданном Dir склеивается внутрь него, при пустом Dir используется как есть.
func (s *Files) resolve(name string) string {
	if s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}
