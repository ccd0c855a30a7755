package iqtest

// ServiceError is returned when a request cannot be served
// because its backing data could not be loaded. It is always
// reported to clients as an internal server error.
type ServiceError struct {
	// prefix describing what the request was doing
	Msg string
	// underlying cause, usually a store.LoadError
	Err error
}

func (e *ServiceError) Error() string {
	return e.Msg + ": " + e.Err.Error()
}

func (e *ServiceError) Cause() error { return e.Err }

func (e *ServiceError) Unwrap() error { return e.Err }
