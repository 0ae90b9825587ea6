package uploadhttp

import (
	"net/http"

	"github.com/sir_venger/upload_demo/internal/models"
	"github.com/sir_venger/upload_demo/pkg/uploadproto"
)

const endpointBytes = "bytes"

// uploadBytes пишет сырые байты части "file" по пути из поля "fileName".
// Имя файла из Content-Disposition части не используется.
func (s *Server) uploadBytes(w http.ResponseWriter, r *http.Request) {
	form, err := readBufferedForm(r, s.Cfg.MaxMemoryBytes)
	if err != nil {
		s.reject(w, r, endpointBytes, err)
		return
	}

	file, ok := form.files[uploadproto.FieldFile]
	if !ok {
		s.reject(w, r, endpointBytes, badRequest("file part is required"))
		return
	}

	name, ok := form.value(uploadproto.FieldFileName)
	if !ok {
		s.reject(w, r, endpointBytes, badRequest("fileName is required"))
		return
	}
	params := models.BytesParams{File: file.Data, FileName: name}

	err = s.Uploads.WriteBytes(r.Context(), params)
	s.finish(w, r, endpointBytes, models.UploadedFile{
		Filename:    params.FileName,
		ContentType: file.ContentType,
	}, int64(len(params.File)), err)
}
