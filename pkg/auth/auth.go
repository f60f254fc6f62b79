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

// Package auth describes the authorization contexts requests are made under.
package auth

import (
	"fmt"
)

// Level is the privilege a request is made with.
type Level int

const (
	// User requests are made as an ordinary, test-created user.
	User Level = iota
	// SuperUser requests bypass normal authorization and are used for
	// administrative work such as session cleanup.
	SuperUser
)

func (l Level) String() string {
	switch l {
	case User:
		return "user"
	case SuperUser:
		return "superuser"
	}

	return fmt.Sprintf("level(%d)", int(l))
}

// Credentials are HTTP basic auth credentials bound to a privilege level.
type Credentials struct {
	Level    Level
	Username string
	Password string
}

// ForSuperUser returns the super user credentials for a server token.  The
// super user has no name, the token is sent as the password.
func ForSuperUser(token string) Credentials {
	return Credentials{
		Level:    SuperUser,
		Password: token,
	}
}

// ForUser returns credentials for an ordinary user.
func ForUser(username, password string) Credentials {
	return Credentials{
		Level:    User,
		Username: username,
		Password: password,
	}
}
