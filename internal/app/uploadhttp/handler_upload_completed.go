package uploadhttp

import (
	"net/http"

	"github.com/sir_venger/upload_demo/internal/models"
	"github.com/sir_venger/upload_demo/pkg/uploadproto"
)

const endpointCompleted = "completed"

// uploadCompleted принимает файл, полностью прочитанный в память, и пишет его синхронно.
func (s *Server) uploadCompleted(w http.ResponseWriter, r *http.Request) {
	form, err := readBufferedForm(r, s.Cfg.MaxMemoryBytes)
	if err != nil {
		s.reject(w, r, endpointCompleted, err)
		return
	}

	file, ok := form.files[uploadproto.FieldFile]
	if !ok {
		s.reject(w, r, endpointCompleted, badRequest("file part is required"))
		return
	}
	s.logAttribute(r, endpointCompleted, models.UploadParams{
		AnotherAttribute: form.optional(uploadproto.FieldAnotherAttribute),
	})

	err = s.Uploads.WriteCompleted(r.Context(), file)
	s.finish(w, r, endpointCompleted, file.UploadedFile, int64(len(file.Data)), err)
}
