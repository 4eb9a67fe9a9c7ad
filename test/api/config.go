/*
Copyright 2026 the ServeRest API Tests Authors.

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
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// TestConfig is read from the environment, after any .env file has been loaded.
type TestConfig struct {
	BaseURL              string        `env:"API_BASE_URL"           envDefault:"https://serverest.dev" validate:"required,url"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT"        envDefault:"30s"                   validate:"gt=0"`
	TestTimeout          time.Duration `env:"TEST_TIMEOUT"           envDefault:"10s"                   validate:"gt=0"`
	PollInterval         time.Duration `env:"POLL_INTERVAL"          envDefault:"500ms"                 validate:"gt=0"`
	SkipIntegration      bool          `env:"SKIP_INTEGRATION"       envDefault:"false"`
	UseLocalTwin         bool          `env:"USE_LOCAL_TWIN"         envDefault:"false"`
	TwinRequireAuth      bool          `env:"TWIN_REQUIRE_AUTH"      envDefault:"false"`
	ValidateSchema       bool          `env:"VALIDATE_SCHEMA"        envDefault:"true"`
	DebugLogging         bool          `env:"DEBUG_LOGGING"          envDefault:"false"`
	LogRequests          bool          `env:"LOG_REQUESTS"           envDefault:"false"`
	LogResponses         bool          `env:"LOG_RESPONSES"          envDefault:"false"`
	TraceState           string        `env:"TRACE_STATE"            envDefault:"test-automation=ginkgo"`
	RequiredFieldPattern string        `env:"REQUIRED_FIELD_PATTERN" envDefault:"(?i)(obrigatório|required)" validate:"required"`
	UserPassword         string        `env:"TEST_USER_PASSWORD"     envDefault:"TestePass123"          validate:"required"`
	UserNamePrefix       string        `env:"TEST_USER_NAME_PREFIX"  envDefault:"Felipe QA"             validate:"required"`
	EmailDomain          string        `env:"TEST_EMAIL_DOMAIN"      envDefault:"example.com"           validate:"required,hostname"`
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if a value is malformed.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config, err := env.ParseAs[TestConfig]()
	if err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks every field, reporting problems by environment variable.
func (c *TestConfig) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("env")
	})

	if err := v.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validating configuration: %w", err)
		}

		invalid := make([]string, 0, len(validationErrors))

		for _, fieldError := range validationErrors {
			invalid = append(invalid, fieldError.Field())
		}

		return fmt.Errorf("invalid configuration: %s. Please set these environment variables or add them to a .env file", strings.Join(invalid, ", "))
	}

	if _, err := regexp.Compile(c.RequiredFieldPattern); err != nil {
		return fmt.Errorf("invalid configuration: REQUIRED_FIELD_PATTERN: %w", err)
	}

	return nil
}

// RequiredFieldMatcher returns the compiled required field pattern.
func (c *TestConfig) RequiredFieldMatcher() *regexp.Regexp {
	return regexp.MustCompile(c.RequiredFieldPattern)
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env",    // From test/api/suites directory
		"../.env",       // From test/api
		"../../../.env", // From test/contracts/consumer/serverest
	}

	if path := os.Getenv("TEST_ENV_FILE"); path != "" {
		envPaths = []string{path}
	}

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

	// Variables already in the environment win.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
