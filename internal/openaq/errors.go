package openaq

import "github.com/cockroachdb/errors"

// Failure categories. Concrete errors are marked with one of these so
// callers can test with errors.Is.
var (
	// ErrConfiguration means the credential is missing or cannot be sent as a header.
	ErrConfiguration = errors.New("openaq: configuration error")

	// ErrTransport means the exchange with the upstream failed before a
	// usable response could be produced.
	ErrTransport = errors.New("openaq: transport error")
)

func configurationError(err error) error {
	return errors.Mark(err, ErrConfiguration)
}

func transportError(err error) error {
	return errors.Mark(err, ErrTransport)
}
