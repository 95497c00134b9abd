// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// SentimentHost is the base URL for the sentiment scoring service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	SentimentHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "all-minilm", "text-embedding-3-small"
	EmbeddingModel string

	// SentimentModel is the model identifier to use for sentiment scoring.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	SentimentModel string

	// EmbeddingDims is the expected embedding dimensionality. Vectors of a
	// different length coming back from the service are a configuration
	// error, not something to silently truncate or pad.
	// Default: 384
	EmbeddingDims int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithSentimentHost sets the sentiment service host URL.
func WithSentimentHost(host string) ConfigOption {
	return func(c *Config) {
		c.SentimentHost = host
	}
}

// WithHost sets both embedding and sentiment hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.SentimentHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithSentimentModel sets the sentiment model identifier.
func WithSentimentModel(model string) ConfigOption {
	return func(c *Config) {
		c.SentimentModel = model
	}
}

// WithEmbeddingDims sets the expected embedding dimensionality.
func WithEmbeddingDims(dims int) ConfigOption {
	return func(c *Config) {
		c.EmbeddingDims = dims
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, both embedding and sentiment use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:  defaultHost,
		SentimentHost:  defaultHost,
		EmbeddingModel: "all-minilm",
		SentimentModel: "qwen2.5:3b",
		EmbeddingDims:  384,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithEmbeddingModel("text-embedding-3-small"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.SentimentHost != "" && !strings.HasSuffix(c.SentimentHost, "/v1") {
		c.SentimentHost = strings.TrimSuffix(c.SentimentHost, "/")
		c.SentimentHost = c.SentimentHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.SentimentHost == "" {
		return errors.New("ai config: SentimentHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.SentimentModel == "" {
		return errors.New("ai config: SentimentModel is required")
	}
	if c.EmbeddingDims < 1 {
		return errors.New("ai config: EmbeddingDims must be positive")
	}
	return nil
}
