package sandbox

import (
	"errors"
	"strconv"
	"sync"

	"github.com/muurk/userdeck/internal/directory"
)

// ErrNotFound is returned for ids the store does not hold
var ErrNotFound = errors.New("user not found")

// Store is an in-memory user directory. Ids are assigned sequentially
// after the highest seeded numeric id.
type Store struct {
	mu     sync.RWMutex
	users  []directory.User
	nextID int64
}

// NewStore creates a store holding seed, in order
func NewStore(seed []directory.User) *Store {
	s := &Store{users: make([]directory.User, 0, len(seed))}
	for _, u := range seed {
		s.users = append(s.users, u.Clone())
		if !u.ID.IsNumeric() {
			continue
		}
		if n, err := strconv.ParseInt(u.ID.String(), 10, 64); err == nil && n > s.nextID {
			s.nextID = n
		}
	}
	return s
}

// List returns every user in insertion order
func (s *Store) List() []directory.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]directory.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}
	return out
}

// Get returns the user with id
func (s *Store) Get(id directory.ID) (directory.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.users[i].Clone(), nil
	}
	return directory.User{}, ErrNotFound
}

// Create stores draft under a fresh id and returns the stored record.
// Any id on the draft is ignored.
func (s *Store) Create(draft directory.User) directory.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	u := draft.Clone()
	u.ID = directory.NumericID(s.nextID)
	s.users = append(s.users, u)
	return u.Clone()
}

// Replace overwrites the user with id. The stored record always keeps id.
func (s *Store) Replace(id directory.ID, user directory.User) (directory.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return directory.User{}, ErrNotFound
	}
	u := user.Clone()
	u.ID = s.users[i].ID
	s.users[i] = u
	return u.Clone(), nil
}

// Delete removes the user with id
func (s *Store) Delete(id directory.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	return nil
}

// Len returns the number of stored users
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// indexOf compares ids by their string form so "3" in a path matches 3
func (s *Store) indexOf(id directory.ID) int {
	for i, u := range s.users {
		if u.ID.String() == id.String() {
			return i
		}
	}
	return -1
}

// SampleUsers returns the records a fresh sandbox starts with
func SampleUsers() []directory.User {
	return []directory.User{
		{ID: directory.NumericID(1), Name: "Leanne Graham", Email: "Sincere@april.biz", Phone: "1-770-736-8031 x56442"},
		{ID: directory.NumericID(2), Name: "Ervin Howell", Email: "Shanna@melissa.tv", Phone: "010-692-6593 x09125"},
		{ID: directory.NumericID(3), Name: "Clementine Bauch", Email: "Nathan@yesenia.net", Phone: "1-463-123-4447"},
		{ID: directory.NumericID(4), Name: "Patricia Lebsack", Email: "Julianne.OConner@kory.org", Phone: "493-170-9623 x156"},
		{ID: directory.NumericID(5), Name: "Chelsey Dietrich", Email: "Lucio_Hettinger@annie.ca", Phone: "(254)954-1289"},
	}
}
