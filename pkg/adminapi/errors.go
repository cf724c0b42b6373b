package adminapi

import (
	"errors"
	"fmt"
)

// genericFailureMessage is used when the server supplies no message field.
const genericFailureMessage = "something went wrong"

// ErrSessionExpired is returned when the server rejects the credential
// with 401 Unauthorized. By the time a caller sees it, the client has
// already cleared the credential source; the caller's remaining duty is
// to send the user back to the login entry point.
var ErrSessionExpired = errors.New("session expired: please login again")

// RequestError is a non-2xx HTTP response other than 401. Message carries
// the server-supplied message when present.
type RequestError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsSessionExpired reports whether err signals a revoked or expired
// credential.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.StatusCode == 404
}
