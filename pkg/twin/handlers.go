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
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/serverest-qa/api-tests/pkg/openapi"
)

const (
	messageCreated        = "Cadastro realizado com sucesso"
	messageUpdated        = "Registro alterado com sucesso"
	messageDeleted        = "Registro excluído com sucesso"
	messageNotDeleted     = "Nenhum registro excluído"
	messageNotFound       = "Usuário não encontrado"
	messageEmailInUse     = "Este email já está sendo usado"
	messageLoggedIn       = "Login realizado com sucesso"
	messageBadCredentials = "Email e/ou senha inválidos"
	messageUnauthorized   = "Token de acesso ausente, inválido, expirado ou usuário do token não existe mais"
	messageMalformedBody  = "Corpo da requisição inválido"
)

// decode reads a JSON body and validates it, writing the 400 itself when
// either step fails.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, messageMalformedBody)
		return false
	}

	if err := validate.Struct(v); err != nil {
		writeJSON(w, http.StatusBadRequest, fieldErrors(err))
		return false
	}

	return true
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := openapi.UserQueryFromValues(r.URL.Query())

	if query.Administrator != "" {
		var admin openapi.Admin

		if err := admin.UnmarshalText([]byte(query.Administrator)); err != nil {
			writeJSON(w, http.StatusBadRequest, openapi.FieldErrors{"administrador": "administrador deve ser 'true' ou 'false'"})
			return
		}
	}

	users := s.store.List(query)

	writeJSON(w, http.StatusOK, &openapi.UserList{
		Count: len(users),
		Users: users,
	})
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var request userRequest

	if !decode(w, r, &request) {
		return
	}

	user, err := s.store.Create(request.user())
	if err != nil {
		if errors.Is(err, ErrEmailInUse) {
			writeMessage(w, http.StatusBadRequest, messageEmailInUse)
			return
		}

		s.logger.Error("failed to create user", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, err.Error())

		return
	}

	s.logger.Debug("user created", zap.String("id", user.ID))

	writeJSON(w, http.StatusCreated, &openapi.UserCreated{
		Message: messageCreated,
		ID:      user.ID,
	})
}

func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if errs := validateUserID(id); errs != nil {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	user, ok := s.store.Get(id)
	if !ok {
		writeMessage(w, http.StatusBadRequest, messageNotFound)
		return
	}

	writeJSON(w, http.StatusOK, &user)
}

func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var request userRequest

	if !decode(w, r, &request) {
		return
	}

	user, created, err := s.store.Put(id, request.user())
	if err != nil {
		if errors.Is(err, ErrEmailInUse) {
			writeMessage(w, http.StatusBadRequest, messageEmailInUse)
			return
		}

		s.logger.Error("failed to update user", zap.String("id", id), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, err.Error())

		return
	}

	if created {
		writeJSON(w, http.StatusCreated, &openapi.UserCreated{
			Message: messageCreated,
			ID:      user.ID,
		})

		return
	}

	writeMessage(w, http.StatusOK, messageUpdated)
}

// DeleteUser does not check the identifier format, any unknown identifier
// is simply not found.
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !s.store.Delete(id) {
		writeMessage(w, http.StatusNotFound, messageNotDeleted)
		return
	}

	s.logger.Debug("user deleted", zap.String("id", id))

	writeMessage(w, http.StatusOK, messageDeleted)
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var request loginRequest

	if !decode(w, r, &request) {
		return
	}

	user, ok := s.store.Authenticate(request.Email, request.Password)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, messageBadCredentials)
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("failed to issue token", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, err.Error())

		return
	}

	if !s.options.OmitBearerPrefix {
		token = "Bearer " + token
	}

	writeJSON(w, http.StatusOK, &openapi.LoginResult{
		Message:       messageLoggedIn,
		Authorization: token,
	})
}

// authorize rejects requests without a valid token for a user that still
// exists. It is a no-op unless authentication is required.
func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.options.RequireAuth {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		if token == "" {
			writeMessage(w, http.StatusUnauthorized, messageUnauthorized)
			return
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			s.logger.Debug("token rejected", zap.Error(err))
			writeMessage(w, http.StatusUnauthorized, messageUnauthorized)

			return
		}

		if _, ok := s.store.Get(claims.Subject); !ok {
			writeMessage(w, http.StatusUnauthorized, messageUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
