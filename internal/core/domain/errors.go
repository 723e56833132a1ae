package domain

import "go.trai.ch/zerr"

var (
	// ErrStorageFailure is returned when the durable store rejects a read or write.
	ErrStorageFailure = zerr.New("storage operation failed")

	// ErrStorageOpenFailed is returned when the durable store cannot be opened.
	ErrStorageOpenFailed = zerr.New("failed to open storage")

	// ErrStorageCloseFailed is returned when the durable store cannot be closed cleanly.
	ErrStorageCloseFailed = zerr.New("failed to close storage")

	// ErrUnknownStorageBackend is returned when the configured storage backend is not supported.
	ErrUnknownStorageBackend = zerr.New("unknown storage backend, expected 'badger', 'file' or 'memory'")

	// ErrIntegrityFailure is reported when a cache entry's checksum does not match its payload.
	ErrIntegrityFailure = zerr.New("cache entry failed integrity check")

	// ErrEntryTooLarge is reported when a cache entry exceeds its share of the storage budget.
	ErrEntryTooLarge = zerr.New("cache entry exceeds storage budget")

	// ErrRemoteFailure is returned when the remote collaborator rejects a fetch or write.
	ErrRemoteFailure = zerr.New("remote request failed")

	// ErrRemoteStatus is returned when the remote collaborator answers with a non-success status.
	ErrRemoteStatus = zerr.New("unexpected remote status")

	// ErrRetryExhausted is reported when an operation has used its whole retry budget.
	ErrRetryExhausted = zerr.New("retry budget exhausted")

	// ErrDrainInProgress is returned when a sync is requested while another is running.
	ErrDrainInProgress = zerr.New("sync already in progress")

	// ErrNoDataAvailable is returned when a read happens offline and nothing valid is cached.
	ErrNoDataAvailable = zerr.New("no data available offline")

	// ErrOffline is returned when an operation explicitly requires connectivity.
	ErrOffline = zerr.New("network is offline")

	// ErrOperationNotFound is returned when a pending operation id is not queued.
	ErrOperationNotFound = zerr.New("pending operation not found")

	// ErrUnknownOperationType is reported when no replay action is registered for an operation type.
	ErrUnknownOperationType = zerr.New("no replay action registered for operation type")

	// ErrInvalidPayload is returned when an operation payload cannot be encoded or decoded.
	ErrInvalidPayload = zerr.New("invalid operation payload")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file parses but fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrInvalidDuration is returned when a duration field cannot be parsed.
	ErrInvalidDuration = zerr.New("invalid duration")

	// ErrUnsupportedConfigFormat is returned when the config file extension is not yaml or toml.
	ErrUnsupportedConfigFormat = zerr.New("unsupported config format, expected .yaml, .yml or .toml")

	// ErrWineNotFound is returned when a wine id is not present in the catalog.
	ErrWineNotFound = zerr.New("wine not found")

	// ErrOrderNotFound is returned when an order id is not present in the order list.
	ErrOrderNotFound = zerr.New("order not found")

	// ErrInvalidInventory is returned when an inventory count is negative.
	ErrInvalidInventory = zerr.New("inventory must not be negative")

	// ErrInvalidOrderStatus is returned when an order status is not one of the known values.
	ErrInvalidOrderStatus = zerr.New("invalid order status")

	// ErrServerFailed is returned when the status server stops with an error.
	ErrServerFailed = zerr.New("status server failed")
)
