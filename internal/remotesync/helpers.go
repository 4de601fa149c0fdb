package remotesync

import (
	"fmt"
	"net/http"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

type httpStatusError struct {
	Message string
	Code    int
}

func (e httpStatusError) Error() string {
	return e.Message
}

type malformedJSONError struct {
	innerError error
}

func (e malformedJSONError) Error() string {
	return e.innerError.Error()
}

func (e malformedJSONError) Unwrap() error {
	return e.innerError
}

func checkForHTTPError(statusCode int, url string) error {
	if statusCode == http.StatusNotFound {
		return httpStatusError{
			Message: fmt.Sprintf("Resource not found when accessing URL: %s. Verify that this resource exists.", url),
			Code:    statusCode,
		}
	}
	if statusCode/100 != 2 {
		return httpStatusError{
			Message: fmt.Sprintf("Unexpected response code: %d when accessing URL: %s", statusCode, url),
			Code:    statusCode,
		}
	}
	return nil
}

// Remote failures are never fatal: the next sync or poll retries, and cached state stays in place.
// Client errors other than timeouts and rate limiting will not fix themselves, so they are logged as
// errors rather than warnings.
func logRemoteError(loggers ldlog.Loggers, err error, errorContext string) {
	if hse, ok := err.(httpStatusError); ok && hse.Code >= 400 && hse.Code < 500 &&
		hse.Code != http.StatusRequestTimeout && hse.Code != http.StatusTooManyRequests {
		loggers.Errorf("Error %s: %s", errorContext, err)
		return
	}
	loggers.Warnf("Error %s (will keep current state): %s", errorContext, err)
}
