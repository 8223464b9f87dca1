// Package output provides JSON output formatting and error handling.
package output

// Exit codes for the CLI.
const (
	ExitOK         = 0 // Success
	ExitUsage      = 1 // Invalid arguments or flags
	ExitValidation = 2 // Local pre-flight validation failed
	ExitAuth       = 3 // Not authenticated / session invalidated
	ExitClient     = 4 // Server rejected the request (4xx)
	ExitNetwork    = 5 // Connection/DNS/timeout error
	ExitServer     = 6 // Server error (5xx)
	ExitParse      = 7 // Response could not be parsed
)

// Error codes carried in the JSON envelope and on *Error.
const (
	CodeUsage        = "USAGE"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNetwork      = "NETWORK_ERROR"
	CodeTimeout      = "TIMEOUT"
	CodeParse        = "PARSE_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeClient       = "CLIENT_ERROR"
	CodeServer       = "SERVER_ERROR"
)

// ExitCodeFor returns the exit code for a given error code.
func ExitCodeFor(code string) int {
	switch code {
	case CodeUsage:
		return ExitUsage
	case CodeValidation:
		return ExitValidation
	case CodeUnauthorized:
		return ExitAuth
	case CodeClient:
		return ExitClient
	case CodeNetwork, CodeTimeout:
		return ExitNetwork
	case CodeServer:
		return ExitServer
	case CodeParse:
		return ExitParse
	default:
		return ExitClient
	}
}
