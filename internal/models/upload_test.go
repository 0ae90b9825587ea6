package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadResult(t *testing.T) {
	ok := Uploaded()
	assert.Equal(t, http.StatusOK, ok.Status)
	assert.Equal(t, "Uploaded", ok.Message)

	conflict := Failed(http.StatusConflict)
	assert.Equal(t, http.StatusConflict, conflict.Status)
	assert.Equal(t, "Upload Failed", conflict.Message)
}
