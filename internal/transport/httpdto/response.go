package httpdto

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	agree_errors "agree-disagree/pkg/errors"

	"github.com/gin-gonic/gin"
)

// DefaultTag wraps values written without an explicit tag.
const DefaultTag = "value0"

const (
	textContentType = "text/plain; charset=utf-8"
	jsonContentType = "application/json; charset=utf-8"
)

// HandlerFunc is a gin handler that reports failures instead of writing them.
type HandlerFunc func(c *gin.Context) error

// Handle adapts h so that a returned error is rendered with WriteError.
func Handle(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {
			WriteError(c, err)
		}
	}
}

// WriteText writes body followed by a newline as plain text.
func WriteText(c *gin.Context, status int, body string) {
	c.Data(status, textContentType, []byte(body+"\n"))
}

// WriteValue writes v under the default tag: {"value0": v}.
func WriteValue(c *gin.Context, v any) error {
	return WriteTagged(c, DefaultTag, v)
}

// WriteTagged writes v as a single-field JSON object keyed by tag, newline terminated.
func WriteTagged(c *gin.Context, tag string, v any) error {
	body, err := EncodeTagged(tag, v)
	if err != nil {
		return err
	}
	c.Data(http.StatusOK, jsonContentType, body)
	return nil
}

// EncodeTagged renders {"<tag>": v} followed by a newline.
func EncodeTagged(tag string, v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any{tag: v}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteError renders err as status plus plain-text body. Errors that carry no
// status become 500 INTERNAL ERROR. err is attached to the context for logging.
func WriteError(c *gin.Context, err error) {
	_ = c.Error(err)
	var se *agree_errors.StatusError
	if errors.As(err, &se) {
		WriteText(c, se.Status, se.Message)
		return
	}
	WriteText(c, http.StatusInternalServerError, "INTERNAL ERROR")
}
