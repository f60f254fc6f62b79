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

// Package models contains the CI server resources exercised by the API tests
// and the static descriptors used to generate and track them.
package models

// Project is a CI server project.
type Project struct {
	ID                        string         `json:"id,omitempty"`
	Name                      string         `json:"name,omitempty"`
	CopyAllAssociatedSettings *bool          `json:"copyAllAssociatedSettings,omitempty"`
	SourceProject             *SourceProject `json:"sourceProject,omitempty"`
	ParentProject             *ParentProject `json:"parentProject,omitempty"`
	BuildTypes                *BuildTypeList `json:"buildTypes,omitempty"`
}

func (*Project) Kind() Kind { return KindProject }

// ParentProject refers to the project a project is nested in.  Requests only
// carry the locator, responses fill in the rest.
type ParentProject struct {
	Locator     string `json:"locator,omitempty"`
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Href        string `json:"href,omitempty"`
	WebURL      string `json:"webUrl,omitempty"`
}

func (*ParentProject) Kind() Kind { return KindParentProject }

// SourceProject refers to a project whose settings are copied into a new one.
type SourceProject struct {
	Locator string `json:"locator,omitempty"`
}

func (*SourceProject) Kind() Kind { return KindSourceProject }

// BuildTypeList is the build configuration collection embedded in a project.
type BuildTypeList struct {
	Count     int         `json:"count"`
	BuildType []BuildType `json:"buildType,omitempty"`
}

// BuildType is a build configuration.
type BuildType struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Project *Project `json:"project,omitempty"`
	Steps   *Steps   `json:"steps,omitempty"`
}

func (*BuildType) Kind() Kind { return KindBuildType }

type Steps struct {
	Count int    `json:"count"`
	Step  []Step `json:"step,omitempty"`
}

type Step struct {
	ID         string      `json:"id,omitempty"`
	Name       string      `json:"name,omitempty"`
	Type       string      `json:"type,omitempty"`
	Properties *Properties `json:"properties,omitempty"`
}

type Properties struct {
	Count    int        `json:"count"`
	Property []Property `json:"property,omitempty"`
}

type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// User is a CI server user account.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
	Roles    *Roles `json:"roles,omitempty"`
}

func (*User) Kind() Kind { return KindUser }

type Roles struct {
	Role []UserRole `json:"role"`
}

// UserRole grants a user a role within a scope, "g" being global.
type UserRole struct {
	RoleID string `json:"roleId"`
	Scope  string `json:"scope"`
}
