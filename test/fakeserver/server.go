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

// Package fakeserver is an in-process stand in for the CI server REST API.
//
// It implements the subset of project, build configuration and user
// endpoints the suites exercise, with the same status codes and error texts
// as the real server, so the suites can run without one.
package fakeserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/teamcity-api-tests/apitests/pkg/models"
)

// RootProjectID is the project every other project descends from.
const RootProjectID = "_Root"

// Deletion is a successful delete the server handled.
type Deletion struct {
	Category models.Category
	Identity string
	// Username is empty for the super user.
	Username string
}

type Server struct {
	lock       sync.Mutex
	token      string
	projects   map[string]*models.Project
	parents    map[string]string
	buildTypes map[string]*models.BuildType
	users      map[int64]*models.User
	nextUserID int64
	deletions  []Deletion
	router     chi.Router
	httpServer *httptest.Server
}

// New returns a server accepting token as the super user password.  An empty
// token gets a random one.
func New(token string) *Server {
	if token == "" {
		token = strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	s := &Server{
		token:      token,
		projects:   map[string]*models.Project{},
		parents:    map[string]string{},
		buildTypes: map[string]*models.BuildType{},
		users:      map[int64]*models.User{},
		nextUserID: 1,
	}

	s.projects[RootProjectID] = &models.Project{ID: RootProjectID, Name: "<Root project>"}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Route("/app/rest", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", s.createProject)
			r.Get("/{locator}", s.readProject)
			r.Delete("/{locator}", s.deleteProject)
		})

		r.Route("/buildTypes", func(r chi.Router) {
			r.Post("/", s.createBuildType)
			r.Get("/{locator}", s.readBuildType)
			r.Delete("/{locator}", s.deleteBuildType)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(s.requireAdmin).Post("/", s.createUser)
			r.Get("/{locator}", s.readUser)
			r.With(s.requireAdmin).Delete("/{locator}", s.deleteUser)
		})
	})

	s.router = router

	return s
}

// Start serves the API on a loopback port.
func Start(token string) *Server {
	s := New(token)
	s.httpServer = httptest.NewServer(s.router)

	return s
}

// Handler exposes the router for use with other servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// URL is the base URL of a started server.
func (s *Server) URL() string {
	if s.httpServer == nil {
		return ""
	}

	return s.httpServer.URL
}

// Token is the super user password.
func (s *Server) Token() string {
	return s.token
}

// Close stops a started server.
func (s *Server) Close() {
	if s.httpServer != nil {
		s.httpServer.Close()
	}
}

// Deletions returns every delete handled so far.
func (s *Server) Deletions() []Deletion {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]Deletion(nil), s.deletions...)
}

// Exists tells whether an entity is present.
func (s *Server) Exists(category models.Category, identity string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	switch category {
	case models.Projects:
		_, ok := s.projects[parseLocator(identity).value]
		return ok
	case models.BuildTypes:
		_, ok := s.buildTypes[parseLocator(identity).value]
		return ok
	case models.Users:
		return s.findUser(parseLocator(identity)) != nil
	}

	return false
}

// Count returns the number of entities in a category, the root project
// excluded.
func (s *Server) Count(category models.Category) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	switch category {
	case models.Projects:
		return len(s.projects) - 1
	case models.BuildTypes:
		return len(s.buildTypes)
	case models.Users:
		return len(s.users)
	}

	return 0
}

type locator struct {
	dimension string
	value     string
}

// parseLocator splits "dimension:value", a bare value is an id.
func parseLocator(s string) locator {
	if dimension, value, ok := strings.Cut(s, ":"); ok {
		return locator{dimension: dimension, value: value}
	}

	return locator{dimension: "id", value: s}
}

func startsWithLetter(id string) bool {
	for _, r := range id {
		return unicode.IsLetter(r) && r < unicode.MaxASCII
	}

	return false
}
