package device

import "time"

// Config holds the session configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// ReadTimeout is the per-attempt window for a complete response frame.
	// An attempt whose window elapses without a terminator counts as a
	// timeout.
	ReadTimeout time.Duration

	// Retries is the total transaction attempt budget. Every attempt
	// writes the request once; the budget is spent on timeouts and on
	// undecodable responses.
	Retries int

	// CommandDelay is an optional settle time between writing a request
	// and reading the response. Some supplies need a moment before the
	// reply starts.
	CommandDelay time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		ReadTimeout: time.Second,
		Retries:     3,
	}
}

// Option is a functional option for configuring the Session.
type Option func(*Config)

// WithLogger sets a logger for session operations.
//
// Example:
//
//	sess, err := device.New(port, 10, device.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithReadTimeout sets the per-attempt response window.
//
// Example:
//
//	sess, err := device.New(port, 10, device.WithReadTimeout(2*time.Second))
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithRetries sets the total transaction attempt budget.
//
// Example:
//
//	sess, err := device.New(port, 10, device.WithRetries(5))
func WithRetries(retries int) Option {
	return func(c *Config) {
		if retries >= 1 {
			c.Retries = retries
		}
	}
}

// WithCommandDelay sets a settle time between request and response.
//
// Example:
//
//	sess, err := device.New(port, 10, device.WithCommandDelay(50*time.Millisecond))
func WithCommandDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.CommandDelay = delay
		}
	}
}
