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

package fakeserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/teamcity-api-tests/apitests/pkg/models"
)

func (s *Server) createBuildType(w http.ResponseWriter, r *http.Request) {
	var request models.BuildType
	if !decode(w, r, &request) {
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if strings.TrimSpace(request.Name) == "" {
		writeError(w, http.StatusBadRequest, "When creating a build type, non empty name should be provided.")
		return
	}

	if request.Project == nil || request.Project.ID == "" {
		writeError(w, http.StatusBadRequest, "Build type creation request should contain project node.")
		return
	}

	project, ok := s.projects[request.Project.ID]
	if !ok {
		writeError(w, http.StatusNotFound, "Project cannot be found by external id '%s'.", request.Project.ID)
		return
	}

	id := request.ID
	if id == "" {
		id = project.ID + "_" + identifierFrom(request.Name)
	}

	if !startsWithLetter(id) {
		writeError(w, http.StatusInternalServerError, "Build configuration or template ID \"%s\" is invalid: starts with non-letter character '%c'.", id, []rune(id + " ")[0])
		return
	}

	if _, ok := s.buildTypes[id]; ok {
		writeError(w, http.StatusBadRequest, "The build configuration / template ID \"%s\" is already used by another configuration or template", id)
		return
	}

	for _, existing := range s.buildTypesOf(project.ID) {
		if existing.Name == request.Name {
			writeError(w, http.StatusBadRequest, "Build configuration with name \"%s\" already exists in project: \"%s\"", request.Name, project.Name)
			return
		}
	}

	buildType := &models.BuildType{
		ID:      id,
		Name:    request.Name,
		Project: &models.Project{ID: project.ID, Name: project.Name},
		Steps:   request.Steps,
	}

	s.buildTypes[id] = buildType

	writeJSON(w, http.StatusOK, buildType)
}

func (s *Server) readBuildType(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "locator")
	id := parseLocator(raw).value

	s.lock.Lock()
	defer s.lock.Unlock()

	buildType, ok := s.buildTypes[id]
	if !ok {
		writeError(w, http.StatusNotFound, "No build type nor template is found by id '%s'.", id)
		return
	}

	writeJSON(w, http.StatusOK, buildType)
}

func (s *Server) deleteBuildType(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "locator")
	id := parseLocator(raw).value

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.buildTypes[id]; !ok {
		writeError(w, http.StatusNotFound, "No build type nor template is found by id '%s'.", id)
		return
	}

	delete(s.buildTypes, id)

	s.deletions = append(s.deletions, Deletion{
		Category: models.BuildTypes,
		Identity: id,
		Username: principalFrom(r.Context()).username(),
	})

	w.WriteHeader(http.StatusNoContent)
}
