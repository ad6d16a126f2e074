// Package testutil builds gin contexts and decodes API envelopes for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(method, path string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, body)
	if body != nil {
		c.Request.Header.Set(constants.HeaderContentType, "application/json")
	}
	return c, w
}

// NewTestContext builds a context whose request body is body encoded as
// JSON, or empty when body is nil.
func NewTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	if body == nil {
		return newContext(method, path, nil)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return newContext(method, path, bytes.NewReader(raw))
}

// NewRawTestContext builds a context whose request body is body verbatim.
func NewRawTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	return newContext(method, path, bytes.NewBufferString(body))
}

// SetEstablishment does what middleware.RequireEstablishment does for a valid header.
func SetEstablishment(c *gin.Context, establishmentID uint) {
	c.Set(constants.ContextKeyEstablishmentID, establishmentID)
}

func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

// APIResponse is utils.APIResponse with Data left undecoded.
type APIResponse struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data,omitempty"`
	Error   *utils.ErrorInfo `json:"error,omitempty"`
	Message string           `json:"message,omitempty"`
}

// ParseResponse decodes the recorded body into target.
func ParseResponse(w *httptest.ResponseRecorder, target interface{}) error {
	if w.Code == http.StatusNoContent {
		return nil
	}
	return json.Unmarshal(w.Body.Bytes(), target)
}

func NewMockLogger() logger.Interface {
	return logger.NewNopLogger()
}
