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
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/teamcity-api-tests/apitests/pkg/models"
)

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var request models.User
	if !decode(w, r, &request) {
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if strings.TrimSpace(request.Username) == "" {
		writeError(w, http.StatusBadRequest, "Username must not be empty when creating user.")
		return
	}

	if s.findUser(locator{dimension: "username", value: request.Username}) != nil {
		writeError(w, http.StatusBadRequest, "Duplicate user account with username \"%s\"", request.Username)
		return
	}

	user := request
	user.ID = s.nextUserID
	s.nextUserID++

	s.users[user.ID] = &user

	writeJSON(w, http.StatusOK, userView(&user))
}

func (s *Server) readUser(w http.ResponseWriter, r *http.Request) {
	loc := parseLocator(chi.URLParam(r, "locator"))

	s.lock.Lock()
	defer s.lock.Unlock()

	user := s.findUser(loc)
	if user == nil {
		writeError(w, http.StatusNotFound, "No user can be found by %s '%s'.", loc.dimension, loc.value)
		return
	}

	writeJSON(w, http.StatusOK, userView(user))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	loc := parseLocator(chi.URLParam(r, "locator"))

	s.lock.Lock()
	defer s.lock.Unlock()

	user := s.findUser(loc)
	if user == nil {
		writeError(w, http.StatusNotFound, "No user can be found by %s '%s'.", loc.dimension, loc.value)
		return
	}

	delete(s.users, user.ID)

	s.deletions = append(s.deletions, Deletion{
		Category: models.Users,
		Identity: strconv.FormatInt(user.ID, 10),
		Username: principalFrom(r.Context()).username(),
	})

	w.WriteHeader(http.StatusNoContent)
}

// findUser must be called with the lock held.
func (s *Server) findUser(loc locator) *models.User {
	switch loc.dimension {
	case "id":
		id, err := strconv.ParseInt(loc.value, 10, 64)
		if err != nil {
			return nil
		}

		return s.users[id]
	case "username":
		for _, user := range s.users {
			if user.Username == loc.value {
				return user
			}
		}
	}

	return nil
}

// userView hides the password.
func userView(user *models.User) *models.User {
	view := *user
	view.Password = ""

	return &view
}
