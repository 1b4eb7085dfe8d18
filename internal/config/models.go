package config

import "time"

// Maven holds the dependency lookup settings.
type Maven struct {
	GroupID    string
	ArtifactID string
	BaseURL    string
	Timeout    time.Duration
	Retry      Retry
}

// Retry holds backoff settings for the dependency lookup.
type Retry struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
}

// Server holds the HTTP server settings.
type Server struct {
	ListenAddress   string
	ShutdownTimeout time.Duration
}

// Maven returns the maven.* settings.
func (c *Config) Maven() (Maven, error) {
	timeout, err := c.GetDuration("maven.timeout")
	if err != nil {
		return Maven{}, err
	}
	initial, err := c.GetDuration("maven.retry.initial_wait")
	if err != nil {
		return Maven{}, err
	}
	maxWait, err := c.GetDuration("maven.retry.max_wait")
	if err != nil {
		return Maven{}, err
	}

	return Maven{
		GroupID:    c.GetString("maven.group_id"),
		ArtifactID: c.GetString("maven.artifact_id"),
		BaseURL:    c.GetString("maven.base_url"),
		Timeout:    timeout,
		Retry: Retry{
			MaxAttempts: c.GetInt("maven.retry.max_attempts"),
			InitialWait: initial,
			MaxWait:     maxWait,
		},
	}, nil
}

// Server returns the server.* settings.
func (c *Config) Server() (Server, error) {
	shutdown, err := c.GetDuration("server.shutdown_timeout")
	if err != nil {
		return Server{}, err
	}
	return Server{
		ListenAddress:   c.GetString("server.listen_address"),
		ShutdownTimeout: shutdown,
	}, nil
}
