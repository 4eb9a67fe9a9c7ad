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
	"slices"
	"sync"

	"github.com/serverest-qa/api-tests/pkg/openapi"

	"k8s.io/apimachinery/pkg/util/rand"
)

var ErrEmailInUse = errors.New("email already in use")

const idLength = 16

// MemoryStore holds the registered users.
type MemoryStore struct {
	mu sync.RWMutex

	users map[string]openapi.User

	// order keeps listings in registration order.
	order []string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: map[string]openapi.User{},
	}
}

// nextID must be called with the lock held.
func (s *MemoryStore) nextID() string {
	for {
		id := rand.String(idLength)

		if _, ok := s.users[id]; !ok {
			return id
		}
	}
}

// emailInUse must be called with the lock held.
func (s *MemoryStore) emailInUse(email, exceptID string) bool {
	for id, user := range s.users {
		if id != exceptID && user.Email == email {
			return true
		}
	}

	return false
}

// insert must be called with the lock held.
func (s *MemoryStore) insert(user openapi.User) openapi.User {
	if user.ID == "" {
		user.ID = s.nextID()
	}

	if _, ok := s.users[user.ID]; !ok {
		s.order = append(s.order, user.ID)
	}

	s.users[user.ID] = user

	return user
}

// Create registers a new user and assigns its identifier.
func (s *MemoryStore) Create(user openapi.User) (openapi.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailInUse(user.Email, "") {
		return openapi.User{}, ErrEmailInUse
	}

	user.ID = ""

	return s.insert(user), nil
}

// Get returns the user with the given identifier.
func (s *MemoryStore) Get(id string) (openapi.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]

	return user, ok
}

// List returns the users matching the query in registration order.
func (s *MemoryStore) List(query openapi.UserQuery) []openapi.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]openapi.User, 0, len(s.order))

	for _, id := range s.order {
		if user := s.users[id]; query.Matches(user) {
			users = append(users, user)
		}
	}

	return users
}

// Put replaces the user with the given identifier. An unknown identifier
// registers a new user under a freshly assigned identifier, and created
// reports that case.
func (s *MemoryStore) Put(id string, user openapi.User) (openapi.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.users[id]

	exceptID := ""
	if exists {
		exceptID = id
	}

	if s.emailInUse(user.Email, exceptID) {
		return openapi.User{}, false, ErrEmailInUse
	}

	if !exists {
		user.ID = ""

		return s.insert(user), true, nil
	}

	user.ID = id

	return s.insert(user), false, nil
}

// Delete removes the user, reporting whether it existed.
func (s *MemoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}

	delete(s.users, id)

	s.order = slices.DeleteFunc(s.order, func(x string) bool {
		return x == id
	})

	return true
}

// Authenticate returns the user registered with the credentials.
func (s *MemoryStore) Authenticate(email, password string) (openapi.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email && user.Password == password {
			return user, true
		}
	}

	return openapi.User{}, false
}

// Load adds users verbatim, keeping any identifiers they carry.
func (s *MemoryStore) Load(users []openapi.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range users {
		if s.emailInUse(user.Email, user.ID) {
			return ErrEmailInUse
		}

		s.insert(user)
	}

	return nil
}

// Len returns the number of registered users.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users)
}
