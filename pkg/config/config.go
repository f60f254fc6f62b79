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

// Package config loads the API test configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type TestConfig struct {
	BaseURL            string
	SuperUserToken     string
	RequestTimeout     time.Duration
	CleanupTimeout     time.Duration
	CleanupRetries     int
	CleanupParallelism int
	CleanupJournal     string
	GenerateOptional   bool
	UseFakeServer      bool
	DebugLogging       bool
	LogRequests        bool
	LogResponses       bool
}

// envPaths are searched for a .env file, relative to the package under test.
var envPaths = []string{ //nolint:gochecknoglobals
	".env",
	"../.env",
	"../../.env",
	"../../../.env",
}

// Load loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func Load() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:            strings.TrimSuffix(os.Getenv("API_BASE_URL"), "/"),
		SuperUserToken:     os.Getenv("API_SUPERUSER_TOKEN"),
		RequestTimeout:     getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		CleanupTimeout:     getDurationWithDefault("CLEANUP_TIMEOUT", 10*time.Second),
		CleanupRetries:     getIntWithDefault("CLEANUP_RETRIES", 1),
		CleanupParallelism: getIntWithDefault("CLEANUP_PARALLELISM", 4),
		CleanupJournal:     os.Getenv("CLEANUP_JOURNAL"),
		GenerateOptional:   getBoolWithDefault("GENERATE_OPTIONAL_FIELDS", false),
		UseFakeServer:      getBoolWithDefault("USE_FAKE_SERVER", os.Getenv("API_BASE_URL") == ""),
		DebugLogging:       getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:        getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:       getBoolWithDefault("LOG_RESPONSES", false),
	}

	// Validate required fields
	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func loadEnvFile() {
	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
// A fake server provides its own address and token.
func validateRequiredFields(config *TestConfig) error {
	if config.UseFakeServer {
		return nil
	}

	var missing []string

	required := map[string]string{
		"API_BASE_URL":        config.BaseURL,
		"API_SUPERUSER_TOKEN": config.SuperUserToken,
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)

		return fmt.Errorf("%w: %s. Please set these environment variables or add them to a .env file", ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	return nil
}
