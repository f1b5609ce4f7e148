package metastore

// MetaError is the generic metastore failure.
type MetaError struct {
	Message string
	Err     error
}

func (e *MetaError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *MetaError) Unwrap() error {
	return e.Err
}

// InvalidOperationError is returned when a change to an existing object is
// not allowed.
type InvalidOperationError struct {
	Message string
	Err     error
}

func (e *InvalidOperationError) Error() string {
	return e.Message
}

func (e *InvalidOperationError) Unwrap() error {
	return e.Err
}

// InvalidObjectError is returned when an object fails validation.
type InvalidObjectError struct {
	Message string
}

func (e *InvalidObjectError) Error() string {
	return e.Message
}

// NoSuchObjectError is returned when a database, table or partition does
// not exist.
type NoSuchObjectError struct {
	Message string
}

func (e *NoSuchObjectError) Error() string {
	return e.Message
}
