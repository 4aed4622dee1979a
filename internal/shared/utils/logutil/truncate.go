package logutil

// TruncateForLog truncates a string to maxLen characters for safe logging.
// If the string is longer than maxLen, it appends "..." to indicate truncation.
// Access tokens and chain transaction hashes are logged through this so only
// a recognizable prefix lands in the logs.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// HashPrefix returns the first 12 characters of a hex digest for log lines.
// Full digests stay in the database; log output only needs enough to correlate.
func HashPrefix(digest string) string {
	return TruncateForLog(digest, 12)
}
