package constants

import "time"

var APIConfig = struct {
	TMDbBaseURL       string
	DeepLinkBaseURL   string
	DefaultTimeout    time.Duration
	MaxErrorBodyBytes int64
}{
	TMDbBaseURL:       "https://api.themoviedb.org/3",
	DeepLinkBaseURL:   "https://www.themoviedb.org/movie/",
	DefaultTimeout:    10 * time.Second,
	MaxErrorBodyBytes: 2048,
}

var PopularLimits = struct {
	Min     int
	Max     int
	Default int
}{
	Min:     1,
	Max:     15,
	Default: 3,
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}{
	FailureThreshold: 3,                // 3 consecutive upstream failures open the circuit
	ResetTimeout:     30 * time.Second, // wait before letting a trial request through
}

var WebSocketConfig = struct {
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
	HandshakeTimeout     time.Duration
}{
	MaxReconnectAttempts: 5,
	ReconnectDelay:       5 * time.Second,
	HandshakeTimeout:     10 * time.Second,
}

var StringLimits = struct {
	EchoCommand int
}{
	EchoCommand: 100,
}
