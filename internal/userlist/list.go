package userlist

import (
	"github.com/muurk/userdeck/internal/directory"
)

// List is the locally held copy of the directory's users, in directory
// order with created users appended at the end.
//
// A List is not safe for concurrent use. It is owned by a single Bubble Tea
// model and mutated only from its Update loop.
type List struct {
	users []directory.User
}

// New returns a list holding copies of users.
func New(users []directory.User) *List {
	l := &List{}
	l.Replace(users)
	return l
}

// Replace discards the current contents and holds copies of users instead.
func (l *List) Replace(users []directory.User) {
	l.users = make([]directory.User, 0, len(users))
	for _, u := range users {
		l.users = append(l.users, u.Clone())
	}
}

// Append adds u at the end of the list.
func (l *List) Append(u directory.User) {
	l.users = append(l.users, u.Clone())
}

// ReplaceByID swaps every entry with the given ID for u, matching
// RemoveByID. It reports whether any entry was replaced; a missing ID
// leaves the list untouched.
func (l *List) ReplaceByID(id directory.ID, u directory.User) bool {
	replaced := false
	for i := range l.users {
		if l.users[i].ID == id {
			l.users[i] = u.Clone()
			replaced = true
		}
	}
	return replaced
}

// RemoveByID drops every entry with the given ID and reports whether any
// entry was removed.
func (l *List) RemoveByID(id directory.ID) bool {
	kept := l.users[:0]
	removed := false
	for _, u := range l.users {
		if u.ID == id {
			removed = true
			continue
		}
		kept = append(kept, u)
	}
	// clear the tail so dropped records can be collected
	for i := len(kept); i < len(l.users); i++ {
		l.users[i] = directory.User{}
	}
	l.users = kept
	return removed
}

// Find returns a copy of the entry with the given ID.
func (l *List) Find(id directory.ID) (directory.User, bool) {
	for _, u := range l.users {
		if u.ID == id {
			return u.Clone(), true
		}
	}
	return directory.User{}, false
}

// At returns a copy of the entry at index i.
func (l *List) At(i int) (directory.User, bool) {
	if i < 0 || i >= len(l.users) {
		return directory.User{}, false
	}
	return l.users[i].Clone(), true
}

// Len returns the number of users held.
func (l *List) Len() int {
	return len(l.users)
}

// Users returns a copy of the list contents.
func (l *List) Users() []directory.User {
	out := make([]directory.User, 0, len(l.users))
	for _, u := range l.users {
		out = append(out, u.Clone())
	}
	return out
}
