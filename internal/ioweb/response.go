package ioweb

import (
	"net/http"

	"github.com/aire-program/aire-impact-dashboard/pkg/schema"
	"github.com/gin-gonic/gin"
)

// APIError is the body of a failed request.
type APIError struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Issues  []schema.Issue `json:"issues,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes an error envelope.
func RespondError(c *gin.Context, status int, code string, err error) {
	RespondIssues(c, status, code, err, nil)
}

// RespondIssues writes an error envelope with validation issues.
func RespondIssues(
	c *gin.Context,
	status int,
	code string,
	err error,
	issues []schema.Issue,
) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
			Issues:  issues,
		},
	})
}

// RespondOK writes a JSON payload with status 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
