package uploadsvc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/upload_demo/internal/models"
)

// failingReader отдаёт часть данных и затем ошибку, имитируя обрыв соединения.
type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()

	var out []string
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if isTempName(e.Name()) {
			out = append(out, e.Name())
		}
	}
	return out
}

func TestTransfer_WritesFile(t *testing.T) {
	root := t.TempDir()
	svc := New(Deps{Dir: root})
	payload := bytes.Repeat([]byte("stream-"), 4096)

	tr := svc.Transfer(context.Background(), models.StreamingUpload{
		UploadedFile: models.UploadedFile{Filename: "stream.bin"},
		Reader:       bytes.NewReader(payload),
	})
	ok, err := tr.Await(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, len(payload), tr.Written())

	got, err := os.ReadFile(filepath.Join(root, "stream.bin"))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Empty(t, tempFiles(t, root))
}

func TestTransfer_FailureLeavesNoPartialFile(t *testing.T) {
	root := t.TempDir()
	svc := New(Deps{Dir: root})

	tr := svc.Transfer(context.Background(), models.StreamingUpload{
		UploadedFile: models.UploadedFile{Filename: "broken.bin"},
		Reader:       &failingReader{data: []byte("partial"), err: io.ErrUnexpectedEOF},
	})
	ok, err := tr.Await(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, models.ErrTransferFailed)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, statErr := os.Stat(filepath.Join(root, "broken.bin"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
	assert.Empty(t, tempFiles(t, root))
}

func TestTransfer_FailureKeepsPreviousFile(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "keep.txt")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))
	svc := New(Deps{Dir: root})

	tr := svc.Transfer(context.Background(), models.StreamingUpload{
		UploadedFile: models.UploadedFile{Filename: "keep.txt"},
		Reader:       &failingReader{data: []byte("new"), err: io.ErrUnexpectedEOF},
	})
	ok, _ := tr.Await(context.Background())
	require.False(t, ok)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
}

func TestTransfer_MissingDirectory(t *testing.T) {
	svc := New(Deps{Dir: t.TempDir()})

	tr := svc.Transfer(context.Background(), models.StreamingUpload{
		UploadedFile: models.UploadedFile{Filename: "no/such/dir/file.txt"},
		Reader:       strings.NewReader("data"),
	})
	ok, err := tr.Await(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, models.ErrTransferFailed)
}

func TestTransfer_AwaitHonoursContext(t *testing.T) {
	svc := New(Deps{Dir: t.TempDir()})
	pr, pw := io.Pipe()

	tr := svc.Transfer(context.Background(), models.StreamingUpload{
		UploadedFile: models.UploadedFile{Filename: "slow.bin"},
		Reader:       pr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	ok, err := tr.Await(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_ = pw.CloseWithError(io.ErrClosedPipe)
	<-tr.Done()
	ok, err = tr.Await(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestTransfer_CancelledContextStopsCopy(t *testing.T) {
	root := t.TempDir()
	svc := New(Deps{Dir: root})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := svc.Transfer(ctx, models.StreamingUpload{
		UploadedFile: models.UploadedFile{Filename: "cancelled.bin"},
		Reader:       strings.NewReader("data"),
	})
	<-tr.Done()
	ok, err := tr.Await(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, tempFiles(t, root))
}

func TestWriteCompleted_RoundTrip(t *testing.T) {
	root := t.TempDir()
	svc := New(Deps{Dir: root})
	data := []byte{0x00, 0xFF, 0x10, '\n', 0x7F}

	err := svc.WriteCompleted(context.Background(), models.CompletedUpload{
		UploadedFile: models.UploadedFile{Filename: "blob.bin"},
		Data:         data,
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(root, "blob.bin"))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestWriteBytes_Overwrites(t *testing.T) {
	root := t.TempDir()
	svc := New(Deps{Dir: root})
	require.NoError(t, os.WriteFile(filepath.Join(root, "f.txt"), []byte("previous content"), 0o644))

	err := svc.WriteBytes(context.Background(), models.BytesParams{File: []byte("short"), FileName: "f.txt"})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(root, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "short", string(got))
}

func TestWrite_UnwritablePath(t *testing.T) {
	root := t.TempDir()
	// файл вместо каталога: запись невозможна даже под root
	require.NoError(t, os.WriteFile(filepath.Join(root, "blocker"), nil, 0o644))
	svc := New(Deps{Dir: root})

	err := svc.WriteBytes(context.Background(), models.BytesParams{File: []byte("x"), FileName: "blocker/f.txt"})
	assert.ErrorIs(t, err, models.ErrIO)

	err = svc.WriteCompleted(context.Background(), models.CompletedUpload{
		UploadedFile: models.UploadedFile{Filename: "blocker/f.txt"},
		Data:         []byte("x"),
	})
	assert.ErrorIs(t, err, models.ErrIO)

	err = svc.WriteBytes(context.Background(), models.BytesParams{File: []byte("x"), FileName: ""})
	assert.ErrorIs(t, err, models.ErrIO)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "../x.txt", New(Deps{}).resolve("../x.txt"))
	assert.Equal(t, filepath.Join("/srv", "a", "b.txt"), New(Deps{Dir: "/srv"}).resolve("a/b.txt"))
	assert.Equal(t, filepath.Join("/srv", "etc", "x.txt"), New(Deps{Dir: "/srv"}).resolve("/etc/x.txt"))
	assert.Equal(t, "/srv/x.txt", New(Deps{Dir: "/srv/uploads"}).resolve("../x.txt"))
	assert.Equal(t, "/etc/x.txt", New(Deps{}).resolve("/etc/x.txt"))
}
