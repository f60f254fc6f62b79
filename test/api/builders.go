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
	"github.com/teamcity-api-tests/apitests/pkg/models"
)

// ProjectPayloadBuilder builds project request bodies, starting from a
// generated project.
type ProjectPayloadBuilder struct {
	payload models.Project
}

// NewProjectPayload copies the given project into a new builder.
func NewProjectPayload(project *models.Project) *ProjectPayloadBuilder {
	return &ProjectPayloadBuilder{
		payload: models.Project{
			ID:   project.ID,
			Name: project.Name,
		},
	}
}

// WithID sets the project ID.
func (b *ProjectPayloadBuilder) WithID(id string) *ProjectPayloadBuilder {
	b.payload.ID = id
	return b
}

// WithName sets the project name.
func (b *ProjectPayloadBuilder) WithName(name string) *ProjectPayloadBuilder {
	b.payload.Name = name
	return b
}

// WithParent nests the project under the project with the given ID.
func (b *ProjectPayloadBuilder) WithParent(id string) *ProjectPayloadBuilder {
	b.payload.ParentProject = &models.ParentProject{Locator: models.Locator(id)}
	return b
}

// WithSource copies the settings of the project with the given ID.
func (b *ProjectPayloadBuilder) WithSource(id string) *ProjectPayloadBuilder {
	b.payload.SourceProject = &models.SourceProject{Locator: models.Locator(id)}
	return b
}

// Build returns the completed payload.
func (b *ProjectPayloadBuilder) Build() *models.Project {
	payload := b.payload

	return &payload
}

// BuildTypePayloadBuilder builds build configuration request bodies.
type BuildTypePayloadBuilder struct {
	payload models.BuildType
}

// NewBuildTypePayload copies the given build type into a new builder.
func NewBuildTypePayload(buildType *models.BuildType) *BuildTypePayloadBuilder {
	b := &BuildTypePayloadBuilder{
		payload: models.BuildType{
			ID:   buildType.ID,
			Name: buildType.Name,
		},
	}

	if buildType.Project != nil {
		b.WithProject(buildType.Project.ID)
	}

	return b
}

// WithName sets the build type name.
func (b *BuildTypePayloadBuilder) WithName(name string) *BuildTypePayloadBuilder {
	b.payload.Name = name
	return b
}

// WithProject places the build type in the project with the given ID.
func (b *BuildTypePayloadBuilder) WithProject(id string) *BuildTypePayloadBuilder {
	b.payload.Project = &models.Project{ID: id}
	return b
}

// WithoutProject drops the project node.
func (b *BuildTypePayloadBuilder) WithoutProject() *BuildTypePayloadBuilder {
	b.payload.Project = nil
	return b
}

// WithCommandLineStep adds a simple command line build step.
func (b *BuildTypePayloadBuilder) WithCommandLineStep(name, script string) *BuildTypePayloadBuilder {
	if b.payload.Steps == nil {
		b.payload.Steps = &models.Steps{}
	}

	b.payload.Steps.Step = append(b.payload.Steps.Step, models.Step{
		Name: name,
		Type: "simpleRunner",
		Properties: &models.Properties{
			Count: 2,
			Property: []models.Property{
				{Name: "script.content", Value: script},
				{Name: "use.custom.script", Value: "true"},
			},
		},
	})
	b.payload.Steps.Count = len(b.payload.Steps.Step)

	return b
}

// Build returns the completed payload.
func (b *BuildTypePayloadBuilder) Build() *models.BuildType {
	payload := b.payload

	return &payload
}
