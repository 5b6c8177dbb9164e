package constants

const (
	ErrCodeUnknownQuery  = "UNKNOWN_QUERY"
	ErrCodeQueryFailed   = "QUERY_FAILED"
	ErrCodeRefreshFailed = "REFRESH_FAILED"
)

var errorMessages = map[string]string{
	ErrCodeUnknownQuery:  "Report name is not in the query catalog",
	ErrCodeQueryFailed:   "Report query failed to execute",
	ErrCodeRefreshFailed: "fare_stats view refresh failed",
}

// GetErrorMessage returns the human-readable message for an error code.
func GetErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Unknown error"
}
