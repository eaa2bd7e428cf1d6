package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/krishnashakula/LeaseIQ/internal/application/upload"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

type mockUploadService struct{ mock.Mock }

func (m *mockUploadService) Accept(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*upload.Receipt, error) {
	args := m.Called(ctx, filename, contentType, size, r)
	if rec := args.Get(0); rec != nil {
		return rec.(*upload.Receipt), args.Error(1)
	}
	return nil, args.Error(1)
}

func newUploadRouter(svc UploadService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewUploadHandler(svc).Register(r.Group("/api/v1"))
	return r
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestUploadAccepted(t *testing.T) {
	svc := &mockUploadService{}
	svc.On("Accept", mock.Anything, "lease.txt", mock.Anything, int64(11), mock.Anything).
		Return(&upload.Receipt{DocumentID: "doc-1", JobID: "job-1"}, nil)

	body, contentType := multipartBody(t, "file", "lease.txt", "hello lease")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	newUploadRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp["status"])
	assert.Equal(t, "doc-1", resp["document_id"])
	assert.Equal(t, "job-1", resp["job_id"])
	svc.AssertExpectations(t)
}

func TestUploadMissingFile(t *testing.T) {
	body, contentType := multipartBody(t, "wrong_field", "lease.txt", "hello")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	newUploadRouter(&mockUploadService{}).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadTooLarge(t *testing.T) {
	svc := &mockUploadService{}
	svc.On("Accept", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, pkgerrors.New(pkgerrors.ErrCodeLeaseDocumentTooLarge, "document too large"))

	body, contentType := multipartBody(t, "file", "big.txt", "xxxxx")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	newUploadRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
