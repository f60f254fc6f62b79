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
	"cmp"
	"net/http"
	"slices"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"

	"github.com/teamcity-api-tests/apitests/pkg/models"
)

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	if !principalFrom(r.Context()).canCreateProjects() {
		writeError(w, http.StatusForbidden, "You do not have enough permissions to create a project")
		return
	}

	var request models.Project
	if !decode(w, r, &request) {
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if strings.TrimSpace(request.Name) == "" {
		writeError(w, http.StatusBadRequest, "Project name cannot be empty.")
		return
	}

	parentID := RootProjectID

	if request.ParentProject != nil {
		parentID = referencedID(request.ParentProject.Locator, request.ParentProject.ID)

		if _, ok := s.projects[parentID]; !ok {
			writeError(w, http.StatusNotFound, "Project cannot be found by external id '%s'.", parentID)
			return
		}
	}

	for id, parent := range s.parents {
		if parent == parentID && s.projects[id].Name == request.Name {
			writeError(w, http.StatusBadRequest, "Project with this name already exists: %s", request.Name)
			return
		}
	}

	id := request.ID
	if id == "" {
		id = identifierFrom(request.Name)
	}

	if !startsWithLetter(id) {
		writeError(w, http.StatusInternalServerError, "Project ID \"%s\" is invalid: starts with non-letter character '%c'.", id, []rune(id + " ")[0])
		return
	}

	if _, ok := s.projects[id]; ok {
		writeError(w, http.StatusBadRequest, "Project ID \"%s\" is already used by another project", id)
		return
	}

	var source *models.Project

	if request.SourceProject != nil {
		sourceID := referencedID(request.SourceProject.Locator, "")

		var ok bool

		if source, ok = s.projects[sourceID]; !ok {
			writeError(w, http.StatusNotFound, "Project cannot be found by external id '%s'.", sourceID)
			return
		}
	}

	s.projects[id] = &models.Project{ID: id, Name: request.Name}
	s.parents[id] = parentID

	if source != nil {
		for _, buildType := range s.buildTypesOf(source.ID) {
			copied := id + "_" + buildType.ID

			s.buildTypes[copied] = &models.BuildType{
				ID:      copied,
				Name:    buildType.Name,
				Project: &models.Project{ID: id, Name: request.Name},
			}
		}
	}

	writeJSON(w, http.StatusOK, s.projectView(id))
}

func (s *Server) readProject(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "locator")
	id := parseLocator(raw).value

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.projects[id]; !ok {
		writeError(w, http.StatusNotFound, "No project found by locator '%s'. Project cannot be found by external id '%s'.", raw, id)
		return
	}

	writeJSON(w, http.StatusOK, s.projectView(id))
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "locator")
	id := parseLocator(raw).value

	s.lock.Lock()
	defer s.lock.Unlock()

	if id == RootProjectID {
		writeError(w, http.StatusBadRequest, "Root project cannot be deleted.")
		return
	}

	if _, ok := s.projects[id]; !ok {
		writeError(w, http.StatusNotFound, "No project found by locator '%s'. Project cannot be found by external id '%s'.", raw, id)
		return
	}

	s.removeProject(id)

	s.deletions = append(s.deletions, Deletion{
		Category: models.Projects,
		Identity: id,
		Username: principalFrom(r.Context()).username(),
	})

	w.WriteHeader(http.StatusNoContent)
}

// removeProject removes a project with its subprojects and build types.
func (s *Server) removeProject(id string) {
	for child, parent := range s.parents {
		if parent == id {
			s.removeProject(child)
		}
	}

	for _, buildType := range s.buildTypesOf(id) {
		delete(s.buildTypes, buildType.ID)
	}

	delete(s.projects, id)
	delete(s.parents, id)
}

func (s *Server) buildTypesOf(projectID string) []*models.BuildType {
	var buildTypes []*models.BuildType

	for _, buildType := range s.buildTypes {
		if buildType.Project != nil && buildType.Project.ID == projectID {
			buildTypes = append(buildTypes, buildType)
		}
	}

	slices.SortFunc(buildTypes, func(a, b *models.BuildType) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return buildTypes
}

func (s *Server) projectView(id string) *models.Project {
	project := s.projects[id]

	view := &models.Project{
		ID:         project.ID,
		Name:       project.Name,
		BuildTypes: &models.BuildTypeList{},
	}

	if parentID, ok := s.parents[id]; ok {
		view.ParentProject = &models.ParentProject{
			ID:   parentID,
			Name: s.projects[parentID].Name,
			Href: models.Projects.ItemPath(parentID),
		}
	}

	for _, buildType := range s.buildTypesOf(id) {
		view.BuildTypes.BuildType = append(view.BuildTypes.BuildType, models.BuildType{ID: buildType.ID, Name: buildType.Name})
	}

	view.BuildTypes.Count = len(view.BuildTypes.BuildType)

	return view
}

// referencedID extracts the id from a reference given either as a locator
// or a bare id.
func referencedID(locatorValue, id string) string {
	if locatorValue != "" {
		return parseLocator(locatorValue).value
	}

	return id
}

// identifierFrom derives an id from a name, the way the server does when a
// request carries none.
func identifierFrom(name string) string {
	var b strings.Builder

	for _, r := range name {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			b.WriteRune(r)
		}
	}

	return b.String()
}
