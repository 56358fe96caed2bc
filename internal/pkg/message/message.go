package message

const (
	InvalidInput   = "Invalid input."
	UnknownField   = "Unknown field in payload."
	RequestTimeout = "Request cancelled or timeout."

	FmtErrStatusCode = "res.StatusCode = %d, want: %d"
)
