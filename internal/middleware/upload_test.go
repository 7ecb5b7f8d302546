package middleware

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"exam-tasks-api/internal/models"

	"github.com/gin-gonic/gin"
)

var (
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pngBytes  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
)

func newUploadRouter(maxBytes int64) (*gin.Engine, *models.AttachmentFile) {
	router := newTestRouter()
	got := &models.AttachmentFile{}
	router.POST("/attachments", Base64Upload("attachment", maxBytes), func(c *gin.Context) {
		file, ok := GetAttachmentFile(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		*got = file
		c.Status(http.StatusCreated)
	})
	return router, got
}

func jsonUpload(value string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/attachments", strings.NewReader(`{"attachment":"`+value+`"}`))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestBase64UploadDetectsExtension(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantExt string
	}{
		{"jpeg", jpegBytes, "jpg"},
		{"png", pngBytes, "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, got := newUploadRouter(1 << 20)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonUpload(base64.StdEncoding.EncodeToString(tt.data)))

			if w.Code != http.StatusCreated {
				t.Fatalf("status = %d, want %d (%s)", w.Code, http.StatusCreated, w.Body.String())
			}
			if got.Extension != tt.wantExt {
				t.Errorf("extension = %q, want %q", got.Extension, tt.wantExt)
			}
			if !bytes.Equal(got.Data, tt.data) {
				t.Errorf("data = %v, want %v", got.Data, tt.data)
			}
		})
	}
}

func TestBase64UploadForms(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngBytes)

	t.Run("urlencoded", func(t *testing.T) {
		router, got := newUploadRouter(1 << 20)
		form := url.Values{"attachment": {encoded}}
		req := httptest.NewRequest(http.MethodPost, "/attachments", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated || got.Extension != "png" {
			t.Fatalf("status = %d, extension = %q", w.Code, got.Extension)
		}
	})

	t.Run("multipart", func(t *testing.T) {
		router, got := newUploadRouter(1 << 20)
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		if err := mw.WriteField("attachment", encoded); err != nil {
			t.Fatalf("WriteField() error = %v", err)
		}
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/attachments", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated || got.Extension != "png" {
			t.Fatalf("status = %d, extension = %q", w.Code, got.Extension)
		}
	})
}

func TestBase64UploadRejects(t *testing.T) {
	tests := []struct {
		name      string
		req       *http.Request
		maxBytes  int64
		want      int
		wantError string
	}{
		{"missing field", jsonUpload(""), 1 << 20, http.StatusBadRequest, "Attachment not found."},
		{"unknown leading char", jsonUpload("R0lGODlh"), 1 << 20, http.StatusBadRequest, "Attachment not found."},
		{"not base64", jsonUpload("/9j/%%%"), 1 << 20, http.StatusBadRequest, "Attachment is not valid base64"},
		{"decoded too large", jsonUpload(base64.StdEncoding.EncodeToString(append(jpegBytes, make([]byte, 64)...))), 32, http.StatusRequestEntityTooLarge, "File too large"},
		{"body too large", jsonUpload("/" + strings.Repeat("A", 64<<10)), 16, http.StatusRequestEntityTooLarge, "File too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newUploadRouter(tt.maxBytes)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tt.req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if got := decodeBody(t, w)["error"]; got != tt.wantError {
				t.Errorf("error = %v, want %q", got, tt.wantError)
			}
		})
	}
}
