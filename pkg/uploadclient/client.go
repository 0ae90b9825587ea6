// Package uploadclient — клиент сервиса загрузок: собирает multipart-запросы
// для трёх эндпоинтов и отправляет тело потоком через io.Pipe.
package uploadclient

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/sir_venger/upload_demo/pkg/uploadproto"
)

// maxResponseBody ограничивает чтение тела ответа; сервис отвечает короткими строками.
const maxResponseBody = 64 << 10

// Request описывает один отправляемый файл.
type Request struct {
	// FileName уходит как filename части (/, /completed) или как поле fileName (/bytes).
	FileName string
	Reader   io.Reader
	// Size нужен только для индикатора прогресса; -1 или 0, если неизвестен.
	Size int64
	// AnotherAttribute отправляется, только если не nil; /bytes его не принимает.
	AnotherAttribute *string
}

// Result — статус и тело ответа сервиса.
type Result struct {
	Status int
	Body   string
}

// OK сообщает, принят ли файл.
func (r Result) OK() bool {
	return r.Status == http.StatusOK && r.Body == uploadproto.BodyUploaded
}

type Client interface {
	// Stream отправляет файл на потоковый эндпоинт /
	Stream(ctx context.Context, baseURL string, req Request) (Result, error)
	// Completed отправляет файл на /completed
	Completed(ctx context.Context, baseURL string, req Request) (Result, error)
	// Bytes отправляет содержимое и имя отдельным полем на /bytes
	Bytes(ctx context.Context, baseURL string, req Request) (Result, error)
}

type httpClient struct {
	c        *http.Client
	progress io.Writer
}

// Option настраивает клиент.
type Option func(*httpClient)

// WithHTTPClient задаёт http.Client для запросов.
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) {
		h.c = c
	}
}

// WithProgress включает индикатор прогресса, который пишется в out.
func WithProgress(out io.Writer) Option {
	return func(h *httpClient) {
		h.progress = out
	}
}

// New создаёт HTTP-клиент по умолчанию.
func New(opts ...Option) Client {
	h := &httpClient{c: &http.Client{}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *httpClient) Stream(ctx context.Context, baseURL string, req Request) (Result, error) {
	return h.post(ctx, baseURL, uploadproto.PathStream, req, func(mw *multipart.Writer, body io.Reader) error {
		if err := writeAttribute(mw, req.AnotherAttribute); err != nil {
			return err
		}
		return writeFile(mw, req.FileName, body)
	})
}

func (h *httpClient) Completed(ctx context.Context, baseURL string, req Request) (Result, error) {
	return h.post(ctx, baseURL, uploadproto.PathCompleted, req, func(mw *multipart.Writer, body io.Reader) error {
		if err := writeFile(mw, req.FileName, body); err != nil {
			return err
		}
		return writeAttribute(mw, req.AnotherAttribute)
	})
}

func (h *httpClient) Bytes(ctx context.Context, baseURL string, req Request) (Result, error) {
	return h.post(ctx, baseURL, uploadproto.PathBytes, req, func(mw *multipart.Writer, body io.Reader) error {
		if err := writeFile(mw, path.Base(req.FileName), body); err != nil {
			return err
		}
		return mw.WriteField(uploadproto.FieldFileName, req.FileName)
	})
}

// post отправляет multipart-тело, которое fill пишет в pipe параллельно с отправкой запроса.
func (h *httpClient) post(ctx context.Context, baseURL, endpoint string, req Request, fill func(*multipart.Writer, io.Reader) error) (Result, error) {
	if req.Reader == nil {
		return Result{}, fmt.Errorf("upload %q: nil reader", req.FileName)
	}

	bar := newProgressBar(h.progress, fmt.Sprintf("Uploading %s to %s", req.FileName, endpoint), req.Size)
	body := io.TeeReader(req.Reader, bar)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := fill(mw, body)
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
	}()

	u := strings.TrimRight(baseURL, "/") + endpoint
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		bar.Finish("", err)
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.c.Do(httpReq)
	if err != nil {
		_ = pr.CloseWithError(err)
		bar.Finish("", err)
		return Result{}, err
	}
	defer resp.Body.Close()
	// сервер мог ответить, не дочитав тело; останавливаем писателя
	_ = pr.CloseWithError(io.ErrClosedPipe)

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		bar.Finish("", err)
		return Result{}, err
	}

	res := Result{Status: resp.StatusCode, Body: string(b)}
	bar.Finish(resp.Status, nil)
	return res, nil
}

func writeFile(mw *multipart.Writer, name string, r io.Reader) error {
	part, err := mw.CreateFormFile(uploadproto.FieldFile, name)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}

func writeAttribute(mw *multipart.Writer, v *string) error {
	if v == nil {
		return nil
	}
	return mw.WriteField(uploadproto.FieldAnotherAttribute, *v)
}
