package client

// Source describes where the value of a Result comes from
type Source string

const (
	// SourceNetwork means the value was just fetched from the API
	SourceNetwork Source = "network"

	// SourceCache means the value was served from the local cache without contacting the API
	SourceCache Source = "cache"

	// SourceStale means the API could not be reached and the last known value is returned together with the error
	SourceStale Source = "stale"

	// SourceNone means no value could be retrieved at all
	SourceNone Source = "none"
)

// Result represents the outcome of a request.
// A result never silently substitutes data: a stale value is always accompanied by the error that made it stale.
type Result[T any] struct {
	Value  T
	Source Source
	Err    error
}

// Ok returns whether the result carries a value (fresh, cached or stale)
func (result Result[T]) Ok() bool {
	return result.Source != SourceNone && result.Source != ""
}

// Stale returns whether the value is outdated because the API could not be reached
func (result Result[T]) Stale() bool {
	return result.Source == SourceStale
}

// Unwrap returns the value if the request succeeded and the error otherwise.
// Stale values are treated as failures.
func (result Result[T]) Unwrap() (T, error) {
	if result.Source == SourceNetwork || result.Source == SourceCache {
		return result.Value, nil
	}
	var zero T
	return zero, result.Err
}

func failed[T any](err error) Result[T] {
	return Result[T]{Source: SourceNone, Err: err}
}
