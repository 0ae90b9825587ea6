package uploadhttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/sir_venger/upload_demo/internal/models"
	"github.com/sir_venger/upload_demo/pkg/uploadproto"
)

const endpointStream = "stream"

// uploadStream передаёт часть "file" в файл, не читая её в память целиком.
// Поля формы, пришедшие до файла, разбираются; пришедшие после — игнорируются.
func (s *Server) uploadStream(w http.ResponseWriter, r *http.Request) {
	mr, err := multipartReader(r)
	if err != nil {
		s.reject(w, r, endpointStream, err)
		return
	}

	var params models.UploadParams
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.reject(w, r, endpointStream, partError(err))
			return
		}

		switch part.FormName() {
		case uploadproto.FieldAnotherAttribute:
			v, err := readField(part)
			if err != nil {
				s.reject(w, r, endpointStream, err)
				return
			}
			params.AnotherAttribute = &v
		case uploadproto.FieldFile:
			if _, ok := rawFileName(part); !ok {
				s.reject(w, r, endpointStream, badRequest("file part must carry a filename"))
				return
			}
			s.transfer(w, r, part, params)
			return
		}
		_ = part.Close()
	}

	s.reject(w, r, endpointStream, badRequest("file part is required"))
}

func (s *Server) transfer(w http.ResponseWriter, r *http.Request, part *multipart.Part, params models.UploadParams) {
	upload := models.StreamingUpload{
		UploadedFile: uploadedFile(part),
		Reader:       part,
	}

	ctx := r.Context()
	t := s.Uploads.Transfer(ctx, upload)
	ok, err := t.Await(ctx)
	if !ok && ctx.Err() != nil {
		// тело запроса нельзя отпускать, пока передача его ещё читает;
		// итог берём уже завершённой передачи
		<-t.Done()
		ok, err = t.Await(context.Background())
	}

	s.logAttribute(r, endpointStream, params)
	var written int64
	switch {
	case ok:
		written = t.Written()
	case err == nil:
		err = models.ErrTransferFailed
	case !errors.Is(err, models.ErrTransferFailed):
		err = fmt.Errorf("%w: %w", models.ErrTransferFailed, err)
	}
	s.finish(w, r, endpointStream, upload.UploadedFile, written, err)
}
