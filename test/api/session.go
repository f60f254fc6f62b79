/*
Copyright 2026 the TeamCity API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/teamcity-api-tests/apitests/pkg/auth"
	"github.com/teamcity-api-tests/apitests/pkg/client"
	"github.com/teamcity-api-tests/apitests/pkg/config"
	"github.com/teamcity-api-tests/apitests/pkg/generator"
	"github.com/teamcity-api-tests/apitests/pkg/models"
	"github.com/teamcity-api-tests/apitests/pkg/registry"
	"github.com/teamcity-api-tests/apitests/test/fakeserver"
)

// Session holds everything a suite run shares.
type Session struct {
	Config    *config.TestConfig
	Pool      *client.Pool
	Registry  *registry.Registry
	Generator *generator.Generator

	// Server is only set when the suite runs against the fake server.
	Server *fakeserver.Server

	journal *registry.BoltJournal
	log     logr.Logger
}

// NewSession loads the configuration and wires up a session from it.
func NewSession(log logr.Logger) (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return NewSessionWithConfig(cfg, log)
}

// NewSessionWithConfig wires up a session from an explicit configuration.
func NewSessionWithConfig(cfg *config.TestConfig, log logr.Logger) (*Session, error) {
	s := &Session{
		Config:    cfg,
		Generator: generator.New(generator.WithOptionalFields(cfg.GenerateOptional)),
		log:       log,
	}

	baseURL := cfg.BaseURL
	token := cfg.SuperUserToken

	if cfg.UseFakeServer {
		s.Server = fakeserver.Start(token)
		baseURL = s.Server.URL()
		token = s.Server.Token()

		log.Info("started fake server", "url", baseURL)
	}

	clientLog := log.WithName("client")
	if !cfg.DebugLogging {
		clientLog = clientLog.V(1)
	}

	s.Pool = client.NewPool(baseURL, auth.ForSuperUser(token),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(clientLog),
		client.WithRequestLogging(cfg.LogRequests, cfg.LogResponses),
	)

	options := []registry.Option{
		registry.WithLogger(log.WithName("registry")),
		registry.WithTimeout(cfg.CleanupTimeout),
		registry.WithRetries(cfg.CleanupRetries),
		registry.WithParallelism(cfg.CleanupParallelism),
	}

	if cfg.CleanupJournal != "" {
		journal, err := registry.OpenBoltJournal(cfg.CleanupJournal)
		if err != nil {
			s.closeServer()
			return nil, fmt.Errorf("opening cleanup journal: %w", err)
		}

		s.journal = journal
		options = append(options, registry.WithJournal(journal))

		log.Info("journaling created entities", "path", cfg.CleanupJournal, "session", journal.Session())
	}

	s.Registry = registry.New(s.Pool, options...)

	return s, nil
}

// SuperUser returns the client with super user credentials.
func (s *Session) SuperUser() *client.Client {
	return s.Pool.SuperUser()
}

// As returns a client authenticated as the given user.
func (s *Session) As(user *models.User) *client.Client {
	return s.Pool.As(auth.ForUser(user.Username, user.Password))
}

// Close deletes everything the session created and releases its resources.
// Deletion failures are reported, never returned.
func (s *Session) Close(ctx context.Context) *registry.Report {
	report := s.Registry.DeleteAll(ctx)

	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			s.log.Error(err, "closing cleanup journal")
		}
	}

	s.closeServer()

	return report
}

func (s *Session) closeServer() {
	if s.Server != nil {
		s.Server.Close()
	}
}
