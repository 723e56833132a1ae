package domain

import (
	"encoding/json"
	"time"
)

// OperationState is the replay state of a pending operation.
type OperationState string

const (
	// StatePending indicates the operation has not been attempted yet.
	StatePending OperationState = "pending"
	// StateRetryable indicates at least one attempt failed and budget remains.
	StateRetryable OperationState = "failed_retryable"
	// StateTerminal indicates the retry budget is exhausted.
	StateTerminal OperationState = "failed_terminal"
)

// PendingOperation is a queued mutation intent awaiting replay against the remote.
type PendingOperation struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Timestamp  int64           `json:"timestamp"`
	RetryCount int             `json:"retryCount"`
	MaxRetries int             `json:"maxRetries"`
	// Key is the cache key the mutation was applied to optimistically, if any.
	Key       string `json:"key,omitempty"`
	LastError string `json:"lastError,omitempty"`
}

// EnqueuedAt returns the time the operation was enqueued.
func (op *PendingOperation) EnqueuedAt() time.Time {
	return time.UnixMilli(op.Timestamp)
}

// Terminal reports whether the operation has no retry budget left.
func (op *PendingOperation) Terminal() bool {
	return op.RetryCount >= op.MaxRetries
}

// State derives the replay state from the retry bookkeeping.
func (op *PendingOperation) State() OperationState {
	switch {
	case op.Terminal():
		return StateTerminal
	case op.RetryCount > 0:
		return StateRetryable
	default:
		return StatePending
	}
}

// Valid reports whether a decoded operation carries the fields replay depends on.
func (op *PendingOperation) Valid() bool {
	return op.ID != "" &&
		op.Type != "" &&
		op.Timestamp > 0 &&
		op.MaxRetries >= 0 &&
		op.RetryCount >= 0 &&
		op.RetryCount <= op.MaxRetries
}

// RetryStats summarizes replay activity since process start.
type RetryStats struct {
	QueuedOperations   int   `json:"queuedOperations"`
	TerminalOperations int   `json:"terminalOperations"`
	SuccessfulRetries  int64 `json:"successfulRetries"`
	FailedRetries      int64 `json:"failedRetries"`
}

// DrainResult reports the outcome of a single pass over the queue.
type DrainResult struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}
