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

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teamcity-api-tests/apitests/pkg/config"
)

func TestLoadDefaultsToFakeServer(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("USE_FAKE_SERVER", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("CLEANUP_RETRIES", "")

	c, err := config.Load()
	require.NoError(t, err)
	require.True(t, c.UseFakeServer)
	require.Equal(t, 30*time.Second, c.RequestTimeout)
	require.Equal(t, 10*time.Second, c.CleanupTimeout)
	require.Equal(t, 1, c.CleanupRetries)
	require.Equal(t, 4, c.CleanupParallelism)
}

func TestLoadRequiresTokenForRealServer(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://teamcity.example.com/")
	t.Setenv("API_SUPERUSER_TOKEN", "")
	t.Setenv("USE_FAKE_SERVER", "false")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrMissingConfiguration)
	require.ErrorContains(t, err, "API_SUPERUSER_TOKEN")
}

func TestLoadParsesValues(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://teamcity.example.com/")
	t.Setenv("API_SUPERUSER_TOKEN", "123456")
	t.Setenv("USE_FAKE_SERVER", "")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("CLEANUP_TIMEOUT", "not a duration")
	t.Setenv("CLEANUP_PARALLELISM", "2")
	t.Setenv("GENERATE_OPTIONAL_FIELDS", "true")
	t.Setenv("LOG_REQUESTS", "1")

	c, err := config.Load()
	require.NoError(t, err)
	require.False(t, c.UseFakeServer)
	require.Equal(t, "http://teamcity.example.com", c.BaseURL)
	require.Equal(t, "123456", c.SuperUserToken)
	require.Equal(t, 5*time.Second, c.RequestTimeout)
	require.Equal(t, 10*time.Second, c.CleanupTimeout)
	require.Equal(t, 2, c.CleanupParallelism)
	require.True(t, c.GenerateOptional)
	require.True(t, c.LogRequests)
}
