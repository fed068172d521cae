package events

import "time"

// NormalizeStart is emitted before a document is parsed and normalized.
type NormalizeStart struct {
	Query         string
	OperationName string
	OperationType string
}

// NormalizeFinish is emitted after a document has been normalized and
// validated. Err is the parse failure, if any.
type NormalizeFinish struct {
	Query         string
	OperationName string
	OperationType string
	Validation    string
	Err           error
	Duration      time.Duration
}
