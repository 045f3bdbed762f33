package application

import "log/slog"

const ModuleName = "photo-contest/voting-engine"

// ResolveLogger guarantees a non-nil logger for application code paths.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
