package cli

// ErrorCode defines error types for CLI operations
type ErrorCode string

const (
	MissingSelection ErrorCode = "MissingSelection"
	InvalidArguments ErrorCode = "InvalidArguments"
	InfoPageFetch    ErrorCode = "InfoPageFetch"
	UnknownPlotKind  ErrorCode = "UnknownPlotKind"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
