// Package exitcode provides standardized exit codes for plugaudit
package exitcode

// Exit codes for plugaudit CLI
const (
	Success           = 0
	GeneralError      = 1
	ConfigError       = 2
	AuditError        = 3
	FileSystemError   = 4
	DatabaseError     = 5
	PermissionError   = 6
	UnsupportedFormat = 8
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case AuditError:
		return "Audit error"
	case FileSystemError:
		return "File system error"
	case DatabaseError:
		return "Database error"
	case PermissionError:
		return "Permission error"
	case UnsupportedFormat:
		return "Unsupported format"
	default:
		return "Unknown error"
	}
}
