package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_RecordsStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	rw.WriteHeader(201)
	n, err := rw.Write([]byte("hello"))

	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 201, rw.status)
	assert.Equal(t, 5, rw.size)
	assert.Equal(t, 201, rec.Code)
}

func TestResponseWriter_ImplicitStatusOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	_, _ = rw.Write([]byte("body"))

	assert.Equal(t, 200, rw.status)
}

func TestResponseWriter_SecondWriteHeaderIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	rw.WriteHeader(204)
	rw.WriteHeader(500)

	assert.Equal(t, 204, rw.status)
	assert.Equal(t, 204, rec.Code)
}

func TestResponseWriter_SizeAccumulatesAcrossWrites(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	_, _ = rw.Write([]byte("ab"))
	_, _ = rw.Write([]byte("cde"))

	assert.Equal(t, 5, rw.size)
}
