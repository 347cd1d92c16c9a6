package openaq

import "fmt"

// Response is the outcome of one upstream call: either Success or Failure.
// The interface is sealed; Match is the way to consume it.
type Response[T any] interface {
	isResponse(T)
}

// Success carries the decoded result set of a 2xx response.
type Success[T any] struct {
	Meta    Meta
	Results []T
}

// Failure carries the diagnostic detail of a non-2xx response.
type Failure[T any] struct {
	StatusCode int
	Status     string
	Body       string
}

func (Success[T]) isResponse(T) {}
func (Failure[T]) isResponse(T) {}

// Match calls exactly one of the handlers depending on the variant of resp.
func Match[T, R any](resp Response[T], onSuccess func(Success[T]) R, onFailure func(Failure[T]) R) R {
	switch r := resp.(type) {
	case Success[T]:
		return onSuccess(r)
	case Failure[T]:
		return onFailure(r)
	default:
		panic(fmt.Sprintf("openaq: unexpected response variant %T", resp))
	}
}
