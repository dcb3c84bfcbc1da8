package gin

import (
	"errors"
	"net/http"

	"github.com/fwojciec/webextract"
	"github.com/gin-gonic/gin"
)

// Detail sent when the remote host answers with a non-2xx status.
const fetchFailedDetail = "Failed to fetch the webpage"

// errorResponse maps a pipeline error to an HTTP status and detail message.
// A remote non-2xx status is passed through to the client.
func errorResponse(err error) (int, string) {
	var fetchErr *webextract.FetchError
	if errors.As(err, &fetchErr) && fetchErr.StatusCode != 0 {
		return fetchErr.StatusCode, fetchFailedDetail
	}

	switch webextract.ErrorCode(err) {
	case webextract.EINVALID:
		return http.StatusBadRequest, webextract.ErrorMessage(err)
	case webextract.ENOTFOUND:
		return http.StatusNotFound, webextract.ErrorMessage(err)
	}

	var appErr *webextract.Error
	if errors.As(err, &appErr) {
		return http.StatusInternalServerError, appErr.Message
	}
	return http.StatusInternalServerError, err.Error()
}

// respondError sends a JSON error response.
func respondError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}
