// Package handlers implements the HTTP API.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Status string      `json:"status"`
	Error  errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeError maps an error to its HTTP status and renders the error
// envelope.  Unknown errors become opaque 500s so internals never leak.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *pkgerrors.AppError
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, errorBody{
			Status: "error",
			Error: errorDetail{
				Code:    string(pkgerrors.ErrCodeInternal),
				Message: "internal server error",
			},
		})
		return
	}

	c.JSON(pkgerrors.HTTPStatus(appErr.Code), errorBody{
		Status: "error",
		Error: errorDetail{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Detail:  appErr.Detail,
		},
	})
}

// envelope wraps every successful analysis response.  The timestamp is the
// serving time; the report body underneath is immutable.
func envelope(analysisType string, jobID string, sectionKey string, section any) gin.H {
	return gin.H{
		"status":        "success",
		"job_id":        jobID,
		"analysis_type": analysisType,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		sectionKey:      section,
	}
}
