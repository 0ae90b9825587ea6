package uploadhttp

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/sir_venger/upload_demo/internal/models"
	"github.com/sir_venger/upload_demo/pkg/uploadproto"
)

// bufferedForm — multipart-форма, целиком прочитанная в память.
type bufferedForm struct {
	values map[string]string
	files  map[string]models.CompletedUpload
}

func (f *bufferedForm) value(name string) (string, bool) {
	v, ok := f.values[name]
	return v, ok
}

func (f *bufferedForm) optional(name string) *string {
	v, ok := f.values[name]
	if !ok {
		return nil
	}
	return &v
}

// multipartReader открывает тело запроса как multipart/form-data.
func multipartReader(r *http.Request) (*multipart.Reader, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}
	return mr, nil
}

// readBufferedForm читает все части формы. Содержимое каждого файла ограничено maxMemory байт;
// часть "file" считается файлом и без filename. Повторяющиеся поля перезаписываются последним значением.
func readBufferedForm(r *http.Request, maxMemory int64) (*bufferedForm, error) {
	mr, err := multipartReader(r)
	if err != nil {
		return nil, err
	}

	form := &bufferedForm{
		values: map[string]string{},
		files:  map[string]models.CompletedUpload{},
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return form, nil
		}
		if err != nil {
			return nil, partError(err)
		}

		name := part.FormName()
		if name == "" {
			_ = part.Close()
			continue
		}

		if _, isFile := rawFileName(part); isFile || name == uploadproto.FieldFile {
			data, err := readLimited(part, maxMemory)
			if err != nil {
				return nil, err
			}
			form.files[name] = completedUpload(part, data)
		} else {
			data, err := readLimited(part, maxFieldBytes)
			if err != nil {
				return nil, err
			}
			form.values[name] = string(data)
		}
		_ = part.Close()
	}
}

// readField читает значение обычного поля формы.
func readField(part *multipart.Part) (string, error) {
	data, err := readLimited(part, maxFieldBytes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, partError(err)
	}
	if int64(len(data)) > limit {
		return nil, &http.MaxBytesError{Limit: limit}
	}
	return data, nil
}

// partError сохраняет MaxBytesError, остальное считает ошибкой клиента.
func partError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return fmt.Errorf("%w: malformed multipart body: %v", models.ErrBadRequest, err)
}

// rawFileName возвращает параметр filename из Content-Disposition как есть.
// multipart.Part.FileName отрезает каталоги через filepath.Base, а путь назначения
// по договорённости равен имени, присланному клиентом.
func rawFileName(part *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}
	name, ok := params["filename"]
	return name, ok
}

func uploadedFile(part *multipart.Part) models.UploadedFile {
	name, _ := rawFileName(part)
	return models.UploadedFile{
		Filename:    name,
		ContentType: part.Header.Get("Content-Type"),
	}
}

func completedUpload(part *multipart.Part, data []byte) models.CompletedUpload {
	return models.CompletedUpload{
		UploadedFile: uploadedFile(part),
		Data:         data,
	}
}

func badRequest(reason string) error {
	return fmt.Errorf("%w: %s", models.ErrBadRequest, reason)
}
