// Package config defines the configuration types for exarch.
// These types are plain data with no dependency on how they are loaded.
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/yaklabco/exarch/pkg/gemini"
)

// Defaults applied by NewConfig.
const (
	DefaultHost     = "0.0.0.0"
	DefaultPort     = gemini.DefaultPort
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "info"
)

// TLSConfig names the server's certificate and key files (PEM).
type TLSConfig struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

// BuildConfig controls static tree conversion.
type BuildConfig struct {
	// Output is the directory the .gmi tree is written to.
	Output string `yaml:"output"`

	// Jobs is the number of conversion workers. 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Host is the address the server binds to.
	Host string `yaml:"host"`

	// Port is the TCP port the server listens on.
	Port int `yaml:"port"`

	// Root is the directory of Markdown documents to serve.
	Root string `yaml:"root"`

	TLS TLSConfig `yaml:"tls"`

	// Timeout bounds the handshake, request read and response write of a
	// single connection.
	Timeout time.Duration `yaml:"timeout"`

	// MaxConnections caps concurrently handled connections. 0 is unlimited.
	MaxConnections int `yaml:"max_connections"`

	// FailureStatus controls whether failed requests receive a status line
	// before the connection closes. Nil means enabled.
	FailureStatus *bool `yaml:"failure_status,omitempty"`

	// IndexFiles are tried in order when a request names a directory.
	IndexFiles []string `yaml:"index_files"`

	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string `yaml:"metrics_addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Build BuildConfig `yaml:"build"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Host:       DefaultHost,
		Port:       DefaultPort,
		Timeout:    DefaultTimeout,
		IndexFiles: []string{"index.md", "_index.md"},
		LogLevel:   DefaultLogLevel,
	}
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// FailureStatusEnabled reports whether failure status lines are sent.
func (c *Config) FailureStatusEnabled() bool {
	return c.FailureStatus == nil || *c.FailureStatus
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
