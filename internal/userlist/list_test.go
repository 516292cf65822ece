package userlist

import (
	"reflect"
	"testing"

	"github.com/muurk/userdeck/internal/directory"
)

func sampleUsers() []directory.User {
	return []directory.User{
		{ID: directory.NumericID(1), Name: "Ann", Email: "a@x.com", Phone: "1"},
		{ID: directory.NumericID(2), Name: "Bo", Email: "b@x.com", Phone: "9"},
		{ID: directory.StringID("c3"), Name: "Cy", Email: "c@x.com", Phone: "3"},
	}
}

func names(l *List) []string {
	var out []string
	for _, u := range l.Users() {
		out = append(out, u.Name)
	}
	return out
}

func TestList_Append(t *testing.T) {
	l := New(sampleUsers())
	before := l.Len()

	l.Append(directory.User{ID: directory.NumericID(4), Name: "Di", Email: "d@x.com", Phone: "4"})

	if l.Len() != before+1 {
		t.Fatalf("Len() = %d, want %d", l.Len(), before+1)
	}
	last, _ := l.At(l.Len() - 1)
	if last.ID != directory.NumericID(4) {
		t.Errorf("last ID = %v, want 4", last.ID)
	}
}

func TestList_ReplaceByID(t *testing.T) {
	l := New(sampleUsers())
	updated := directory.User{ID: directory.NumericID(2), Name: "Bo", Email: "bo@x.com", Phone: "8"}

	if !l.ReplaceByID(updated.ID, updated) {
		t.Fatal("ReplaceByID() = false, want true")
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
	got, ok := l.Find(directory.NumericID(2))
	if !ok || !reflect.DeepEqual(got, updated) {
		t.Errorf("Find(2) = %+v, want %+v", got, updated)
	}
	if !reflect.DeepEqual(names(l), []string{"Ann", "Bo", "Cy"}) {
		t.Errorf("order changed: %v", names(l))
	}
}

func TestList_ReplaceByIDDuplicates(t *testing.T) {
	// The public demo directory answers every create with id 11
	l := New([]directory.User{
		{ID: directory.NumericID(11), Name: "X", Email: "x@x.com", Phone: "1"},
		{ID: directory.NumericID(1), Name: "Ann", Email: "a@x.com", Phone: "1"},
		{ID: directory.NumericID(11), Name: "Y", Email: "y@x.com", Phone: "2"},
	})
	updated := directory.User{ID: directory.NumericID(11), Name: "Z", Email: "z@x.com", Phone: "3"}

	if !l.ReplaceByID(updated.ID, updated) {
		t.Fatal("ReplaceByID() = false, want true")
	}
	if !reflect.DeepEqual(names(l), []string{"Z", "Ann", "Z"}) {
		t.Errorf("names = %v, want every id 11 entry replaced", names(l))
	}
}

func TestList_ReplaceByIDMissing(t *testing.T) {
	l := New(sampleUsers())

	if l.ReplaceByID(directory.NumericID(99), directory.User{ID: directory.NumericID(99), Name: "Ghost"}) {
		t.Error("ReplaceByID() for missing id should return false")
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
}

func TestList_RemoveByID(t *testing.T) {
	l := New(sampleUsers())

	if !l.RemoveByID(directory.StringID("c3")) {
		t.Fatal("RemoveByID() = false, want true")
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
	if _, ok := l.Find(directory.StringID("c3")); ok {
		t.Error("removed id still present")
	}
	if l.RemoveByID(directory.StringID("c3")) {
		t.Error("second RemoveByID() should return false")
	}
}

func TestList_IDKindMatters(t *testing.T) {
	l := New(sampleUsers())

	if _, ok := l.Find(directory.StringID("1")); ok {
		t.Error("string id \"1\" should not match numeric id 1")
	}
}

func TestList_UsersIsCopy(t *testing.T) {
	l := New(sampleUsers())

	users := l.Users()
	users[0].Name = "changed"

	if first, _ := l.At(0); first.Name != "Ann" {
		t.Error("Users() should return a copy")
	}
}

func TestList_At(t *testing.T) {
	l := New(nil)
	if _, ok := l.At(0); ok {
		t.Error("At(0) on empty list should fail")
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}
