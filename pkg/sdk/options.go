package intentd

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	modelDir string

	addrs     []string
	password  string
	keyPrefix string

	threshold float64
	maxLen    int
	lowText   string
	missText  string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithModelDir loads artifacts from a local directory. This is the default
// source, reading from "model".
func WithModelDir(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.modelDir = dir
	})
}

// WithRedis loads artifacts from a shared Redis store instead of local files.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix overrides the Redis key prefix for artifacts.
// Default: "intentd:artifact:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithConfidenceThreshold overrides the confidence gate. Predictions below
// the threshold resolve to the "unknown" intent. Default: 0.15.
func WithConfidenceThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.threshold = t
	})
}

// WithMaxMessageLen overrides the message length cap. Default: 500.
func WithMaxMessageLen(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxLen = n
	})
}

// WithFallbacks overrides the low-confidence and no-answer response texts.
func WithFallbacks(lowConfidence, noAnswer string) Option {
	return optionFunc(func(c *clientConfig) {
		c.lowText = lowConfidence
		c.missText = noAnswer
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
