package uploadsvc

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/sir_venger/upload_demo/internal/logger"
	"github.com/sir_venger/upload_demo/internal/models"
)

const (
	tempPrefix = ".upload-"
	tempSuffix = ".part"
)

// Transfer — одноразовый результат асинхронной передачи: ровно одно значение true/false.
type Transfer struct {
	done    chan struct{}
	ok      bool
	err     error
	written int64
}

func newTransfer() *Transfer {
	return &Transfer{done: make(chan struct{})}
}

func (t *Transfer) complete(written int64, err error) {
	t.written = written
	t.ok = err == nil
	t.err = err
	close(t.done)
}

// Resolved возвращает уже завершённую передачу с заданным итогом.
func Resolved(written int64, err error) *Transfer {
	t := newTransfer()
	t.complete(written, err)
	return t
}

// Done закрывается, когда передача завершена.
func (t *Transfer) Done() <-chan struct{} {
	return t.done
}

// Await ждёт завершения передачи либо отмены ctx.
// При отмене ctx возвращает false и ошибку контекста, сама передача при этом может ещё идти.
func (t *Transfer) Await(ctx context.Context) (bool, error) {
	select {
	case <-t.done:
		return t.ok, t.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Written возвращает число записанных байт; имеет смысл только после Done.
func (t *Transfer) Written() int64 {
	<-t.done
	return t.written
}

// Transfer запускает копирование потока во временный файл рядом с назначением
// и переименовывает его только после полного копирования. При ошибке временный файл удаляется,
// поэтому по пути назначения не остаётся частично записанного файла.
func (s *Files) Transfer(ctx context.Context, file models.StreamingUpload) *Transfer {
	t := newTransfer()
	dest := s.resolve(file.Filename)

	go func() {
		ctx, span := s.Tracer.Start(ctx, "uploadsvc.Transfer")
		span.SetAttributes(attribute.String("upload.filename", file.Filename))

		n, err := transferTo(ctx, dest, file.Reader)
		span.SetAttributes(attribute.Int64("upload.bytes", n))
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", models.ErrTransferFailed, file.Filename, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "transfer failed")
			s.Log.WarnContext(ctx, "stream transfer failed", logger.Filename(file.Filename), logger.Error(err))
		} else {
			s.Log.DebugContext(ctx, "stream transfer done", logger.Filename(file.Filename), "bytes", n)
		}
		// спан закрывается до сигнала о завершении, чтобы ожидающий видел его законченным
		span.End()
		t.complete(n, err)
	}()

	return t
}

func transferTo(ctx context.Context, dest string, r io.Reader) (int64, error) {
	tmpPath := filepath.Join(filepath.Dir(dest), tempPrefix+uuid.NewString()+tempSuffix)
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, &ctxReader{ctx: ctx, r: r})
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, dest)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return n, err
	}

	return n, nil
}

// ctxReader прерывает чтение после отмены контекста.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
