/*
Copyright 2026 Nscale.

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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingConfiguration = errors.New("missing required configuration")

type TestConfig struct {
	// BaseURL of the server under test, the fake server is used when empty.
	BaseURL        string
	SuperUserToken string
	RequestTimeout time.Duration
	LogRequests    bool
	LogResponses   bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:        os.Getenv("TEAMCITY_BASE_URL"),
		SuperUserToken: os.Getenv("TEAMCITY_SUPERUSER_TOKEN"),
		RequestTimeout: getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		LogRequests:    getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:   getBoolWithDefault("LOG_RESPONSES", false),
	}

	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

// External reports whether the suites run against a real server.
func (c *TestConfig) External() bool {
	return c.BaseURL != ""
}

// Verbosity is the request logging level, bodies are logged at level 2.
func (c *TestConfig) Verbosity() int {
	switch {
	case c.LogResponses:
		return 2
	case c.LogRequests:
		return 1
	}

	return 0
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

func loadEnvFile() {
	envPaths := []string{
		"../../.env",    // From test/api/suites directory
		"../../../.env", // From the repository root
	}

	for _, path := range envPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}

		// Variables already set in the environment win.
		if err := godotenv.Load(absPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", absPath, err)
		}

		return
	}
}

// validateRequiredFields checks the super user token is set for a real server.
func validateRequiredFields(config *TestConfig) error {
	if config.External() && config.SuperUserToken == "" {
		return fmt.Errorf("%w: TEAMCITY_SUPERUSER_TOKEN must be set with TEAMCITY_BASE_URL. Please set it in the environment or a .env file", ErrMissingConfiguration)
	}

	return nil
}
