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


// Package httpapi serves the catalog over HTTP.
package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/ludex"
)

// Server wraps the catalog with an HTTP surface.
type Server struct {
	catalog *ludex.Catalog
	engine  *gin.Engine
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates an HTTP server over the given catalog.
func NewServer(catalog *ludex.Catalog, opts ...Option) (*Server, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		catalog: catalog,
		engine:  engine,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	engine.GET("/search", s.handleSearch)
	engine.GET("/semantic_search", s.handleSemanticSearch)
	engine.GET("/popular_searches", s.handlePopularSearches)
	engine.GET("/game/:name", s.handleGameDetail)
	engine.POST("/game/:id/review", s.handleSubmitReview)

	return s, nil
}

// Handler exposes the router, used by tests and custom http.Server setups.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

// Run serves requests on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("serving catalog API", "addr", addr)
	return s.engine.Run(addr)
}
