package core

// Logger interface for simulation logging
type Logger interface {
	Printf(format string, args ...interface{})
}
