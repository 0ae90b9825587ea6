package uploadsvc

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/sir_venger/upload_demo/internal/logger"
	"github.com/sir_venger/upload_demo/internal/models"
)

// WriteCompleted записывает буферизованный файл по пути, равному его имени.
func (s *Files) WriteCompleted(ctx context.Context, file models.CompletedUpload) error {
	return s.write(ctx, "uploadsvc.WriteCompleted", file.Filename, file.Data)
}

// WriteBytes записывает сырые байты по пути из поля fileName.
func (s *Files) WriteBytes(ctx context.Context, params models.BytesParams) error {
	return s.write(ctx, "uploadsvc.WriteBytes", params.FileName, params.File)
}

// write пишет данные синхронно, существующий файл перезаписывается.
func (s *Files) write(ctx context.Context, op, name string, data []byte) error {
	ctx, span := s.Tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.String("upload.filename", name),
		attribute.Int("upload.bytes", len(data)),
	)

	if err := os.WriteFile(s.resolve(name), data, 0o644); err != nil {
		err = fmt.Errorf("%w: %w", models.ErrIO, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		s.Log.WarnContext(ctx, "file write failed", logger.Filename(name), logger.Error(err))
		return err
	}

	return nil
}
