package validation

import (
	"bytes"
	"io"
	"net/http"

	"exam-tasks-api/internal/apperror"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
)

// Validate rejects requests whose params, query or body do not match rs.
// The body is restored so handlers can bind it again.
func Validate(rs RequestSchema) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rs.Params != nil {
			params := make(map[string]interface{}, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			if !check(c, "params", rs.Params, gojsonschema.NewGoLoader(params)) {
				return
			}
		}

		if rs.Query != nil {
			query := make(map[string]interface{})
			for key, values := range c.Request.URL.Query() {
				if len(values) > 0 {
					query[key] = values[0]
				}
			}
			if !check(c, "query", rs.Query, gojsonschema.NewGoLoader(query)) {
				return
			}
		}

		if rs.Body != nil {
			body, err := readBody(c.Request)
			if err != nil {
				abort(c, apperror.NewValidation("Invalid request body", err.Error()))
				return
			}
			if len(bytes.TrimSpace(body)) == 0 {
				body = []byte("{}")
			}
			if !check(c, "body", rs.Body, gojsonschema.NewBytesLoader(body)) {
				return
			}
		}

		c.Next()
	}
}

func check(c *gin.Context, part string, schema *gojsonschema.Schema, document gojsonschema.JSONLoader) bool {
	violations, err := ValidateDocument(schema, document)
	if err != nil {
		// Unparseable documents, e.g. malformed JSON bodies
		abort(c, apperror.NewValidation("Invalid request "+part, err.Error()))
		return false
	}
	if len(violations) > 0 {
		abort(c, apperror.NewValidation("Invalid request "+part, violations...))
		return false
	}
	return true
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
