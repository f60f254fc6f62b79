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
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/teamcity-api-tests/apitests/pkg/models"
)

type principalKey struct{}

// principal is the authenticated caller, a nil user is the super user.
type principal struct {
	user *models.User
}

func (p principal) username() string {
	if p.user == nil {
		return ""
	}

	return p.user.Username
}

func (p principal) isAdmin() bool {
	if p.user == nil {
		return true
	}

	if p.user.Roles == nil {
		return false
	}

	for _, role := range p.user.Roles.Role {
		if role.RoleID == "SYSTEM_ADMIN" {
			return true
		}
	}

	return false
}

func (p principal) canCreateProjects() bool {
	return p.user == nil || (p.user.Roles != nil && len(p.user.Roles.Role) > 0)
}

func principalFrom(ctx context.Context) principal {
	p, _ := ctx.Value(principalKey{}).(principal)

	return p
}

// authenticate accepts the super user, an empty user name with the token as
// password, or any user created through the API.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		var p principal

		if username == "" {
			if password != s.token {
				writeError(w, http.StatusUnauthorized, "Incorrect username or password.")
				return
			}
		} else {
			s.lock.Lock()
			user := s.findUser(locator{dimension: "username", value: username})
			s.lock.Unlock()

			if user == nil || user.Password != password {
				writeError(w, http.StatusUnauthorized, "Incorrect username or password.")
				return
			}

			p.user = user
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !principalFrom(r.Context()).isAdmin() {
			writeError(w, http.StatusForbidden, "You do not have \"Change users\" permission.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

// writeError replies in the plain text format the real server uses.
func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
	w.WriteHeader(status)

	_, _ = fmt.Fprintf(w, "Error has occurred during request processing, status code: %d (%s).\nDetails: %s\n",
		status, http.StatusText(status), fmt.Sprintf(format, args...))
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Could not parse request body: %v", err)
		return false
	}

	return true
}
