package middleware

import (
	"encoding/base64"
	"errors"
	"net/http"

	"exam-tasks-api/internal/apperror"
	"exam-tasks-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const attachmentKey = "attachment_file"

// formOverhead is the body allowance on top of the encoded payload for the
// field name, JSON quoting and multipart boundaries
const formOverhead = 8 << 10

// Base64Upload reads a base64 encoded image from field, decodes it and stores
// the result in the context. JPEG payloads start with '/' and PNG ones with 'i'.
func Base64Upload(field string, maxBytes int64) gin.HandlerFunc {
	notFound := cases.Title(language.Und, cases.NoLower).String(field) + " not found."
	bodyLimit := int64(base64.StdEncoding.EncodedLen(int(maxBytes))) + formOverhead

	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)

		value, err := readField(c, field)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				abortWith(c, apperror.New(apperror.TooLarge, "File too large"))
				return
			}
			abortWith(c, apperror.NewValidation(notFound, err.Error()))
			return
		}

		var extension string
		switch {
		case value == "":
			abortWith(c, apperror.NewValidation(notFound))
			return
		case value[0] == '/':
			extension = "jpg"
		case value[0] == 'i':
			extension = "png"
		default:
			abortWith(c, apperror.NewValidation(notFound))
			return
		}

		data, err := decodeBase64(value)
		if err != nil {
			abortWith(c, apperror.NewValidation("Attachment is not valid base64", err.Error()))
			return
		}
		if int64(len(data)) > maxBytes {
			abortWith(c, apperror.New(apperror.TooLarge, "File too large"))
			return
		}

		c.Set(attachmentKey, models.AttachmentFile{Data: data, Extension: extension})
		c.Next()
	}
}

// GetAttachmentFile returns the file decoded by Base64Upload
func GetAttachmentFile(c *gin.Context) (models.AttachmentFile, bool) {
	value, ok := c.Get(attachmentKey)
	if !ok {
		return models.AttachmentFile{}, false
	}
	file, ok := value.(models.AttachmentFile)
	return file, ok
}

func readField(c *gin.Context, field string) (string, error) {
	switch c.ContentType() {
	case binding.MIMEJSON:
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			return "", err
		}
		value, _ := body[field].(string)
		return value, nil
	case binding.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(formOverhead); err != nil {
			return "", err
		}
	default:
		if err := c.Request.ParseForm(); err != nil {
			return "", err
		}
	}
	return c.Request.PostFormValue(field), nil
}

// decodeBase64 accepts padded and unpadded input
func decodeBase64(value string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(value)
	if err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(value)
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
