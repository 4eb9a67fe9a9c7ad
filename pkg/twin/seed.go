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

package twin

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/serverest-qa/api-tests/pkg/openapi"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Users []seedUser `yaml:"usuarios"`
}

type seedUser struct {
	ID            string `yaml:"_id"`
	Name          string `yaml:"nome"`
	Email         string `yaml:"email"`
	Password      string `yaml:"password"`
	Administrator string `yaml:"administrador"`
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) ([]openapi.User, error) {
	var seed seedFile

	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}

	users := make([]openapi.User, 0, len(seed.Users))

	for i, u := range seed.Users {
		var admin openapi.Admin

		if err := admin.UnmarshalText([]byte(u.Administrator)); err != nil {
			return nil, fmt.Errorf("seed user %d: %w", i, err)
		}

		if u.ID != "" && !openapi.ValidUserID(u.ID) {
			return nil, fmt.Errorf("seed user %d: %w", i, openapi.ErrInvalidUserID)
		}

		users = append(users, openapi.User{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			Password:      u.Password,
			Administrator: admin,
		})
	}

	return users, nil
}

// loadSeed reads the configured seed file, or the built in one.
func loadSeed(path string) ([]openapi.User, error) {
	data := defaultSeed

	if path != "" {
		var err error

		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("reading seed file: %w", err)
		}
	}

	return ParseSeed(data)
}
