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

package generator

import (
	"errors"
	"fmt"

	"github.com/teamcity-api-tests/apitests/pkg/models"
)

// ErrGeneration matches every GenerationError.
var ErrGeneration = errors.New("generation failed")

// GenerationError is returned when a model cannot be built.  It is fatal to
// the test that asked for the model.
type GenerationError struct {
	Kind   models.Kind
	Field  string
	Reason string
}

func (e *GenerationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("generating %s field %s: %s", e.Kind, e.Field, e.Reason)
	}

	return fmt.Sprintf("generating %s: %s", e.Kind, e.Reason)
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}
