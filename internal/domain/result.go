package domain

// Result is the outcome of a content fetch. Data is meaningful for Live and
// Fallback; Err is set only for Failed.
type Result[T any] struct {
	Data   T
	Source Source
	Err    error
}

// Live wraps data served from the backend or a fresh cache entry.
func Live[T any](data T) Result[T] {
	return Result[T]{Data: data, Source: SourceLive}
}

// Fallback wraps bundled sample data served because the backend failed.
func Fallback[T any](data T) Result[T] {
	return Result[T]{Data: data, Source: SourceFallback}
}

// Failed wraps an error when neither the backend nor sample data could serve.
func Failed[T any](err error) Result[T] {
	return Result[T]{Source: SourceFailed, Err: err}
}

// Degraded reports whether the caller is looking at sample data.
func (r Result[T]) Degraded() bool { return r.Source == SourceFallback }

// Unwrap returns Data and Err, for callers that only care about success.
func (r Result[T]) Unwrap() (T, error) { return r.Data, r.Err }
