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
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/serverest-qa/api-tests/pkg/openapi"
)

// userRequest is the body of user creation and replacement.
type userRequest struct {
	Name          string `json:"nome"          validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Password      string `json:"password"      validate:"required"`
	Administrator string `json:"administrador" validate:"required,oneof=true false"`
}

func (r *userRequest) user() openapi.User {
	return openapi.User{
		Name:          r.Name,
		Email:         r.Email,
		Password:      r.Password,
		Administrator: openapi.Admin(r.Administrator),
	}
}

// loginRequest is the body of a login.
type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

//nolint:gochecknoglobals
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// fieldErrors converts a validation failure into per-field messages worded
// the way the public API words them.
func fieldErrors(err error) openapi.FieldErrors {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return openapi.FieldErrors{"message": err.Error()}
	}

	out := openapi.FieldErrors{}

	for _, fieldError := range validationErrors {
		field := fieldError.Field()

		switch fieldError.Tag() {
		case "required":
			out[field] = field + " é obrigatório"
		case "email":
			out[field] = field + " deve ser um email válido"
		case "oneof":
			out[field] = fmt.Sprintf("%s deve ser '%s'", field, strings.ReplaceAll(fieldError.Param(), " ", "' ou '"))
		default:
			out[field] = field + " é inválido"
		}
	}

	return out
}

// validateUserID checks the identifier format before any lookup.
func validateUserID(id string) openapi.FieldErrors {
	if !openapi.ValidUserID(id) {
		return openapi.FieldErrors{"id": "id deve ter exatamente 16 caracteres alfanuméricos"}
	}

	return nil
}
