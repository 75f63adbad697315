package glider

// ErrorCode defines error types for glider data operations
type ErrorCode string

const (
	// ErrUnknownServer represents a server URL with no known-variables entry
	ErrUnknownServer ErrorCode = "UnknownServer"

	// ErrNoDatasetSelection represents a fetch attempted before a dataset id
	// was set or a query was run
	ErrNoDatasetSelection ErrorCode = "NoDatasetSelection"

	// ErrCatalogSearch represents an HTTP failure during catalog discovery
	ErrCatalogSearch ErrorCode = "CatalogSearchFailed"

	// ErrUnsupportedServer represents an operation only valid against the
	// IOOS glider DAC invoked on another server
	ErrUnsupportedServer ErrorCode = "UnsupportedServer"

	// ErrInvalidBounds represents query bounds that failed validation
	ErrInvalidBounds ErrorCode = "InvalidBounds"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
