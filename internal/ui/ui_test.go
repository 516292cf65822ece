package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/userdeck/internal/directory"
)

func newTestPrinter(input string) (*Printer, *bytes.Buffer) {
	var out bytes.Buffer
	p := NewPrinter(&out, strings.NewReader(input))
	p.SetWidth(80)
	return p, &out
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{" YES \n", true},
		{"y", true},
		{"n\n", false},
		{"\n", false},
		{"sure\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p, out := newTestPrinter(tt.input)
			got := p.Confirm("DELETE USER", []string{"Ann <a@x.com>"}, "Delete this user?")
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Delete this user? [y/N]") {
				t.Error("prompt not printed")
			}
			if !tt.want && !strings.Contains(out.String(), "Operation cancelled") && tt.input != "" {
				t.Error("declining should print a cancellation notice")
			}
		})
	}
}

func TestRenderUsersTable(t *testing.T) {
	users := []directory.User{
		{ID: directory.NumericID(1), Name: "Ann", Email: "a@x.com", Phone: "1"},
		{ID: directory.StringID("u-2"), Name: "Bo", Email: "b@x.com", Phone: "9"},
	}

	got := RenderUsersTable(users, 80)

	for _, want := range []string{"ID", "NAME", "EMAIL", "PHONE", "Ann", "a@x.com", "u-2", "Bo"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Ann") > strings.Index(got, "Bo") {
		t.Error("rows should keep list order")
	}
}

func TestRenderUsersTable_Empty(t *testing.T) {
	if got := RenderUsersTable(nil, 80); !strings.Contains(got, "No users") {
		t.Errorf("RenderUsersTable(nil) = %q", got)
	}
}

func TestResult_DetailsInOrder(t *testing.T) {
	r := NewSuccessResult("User created",
		Detail{Key: "ID", Value: "11"},
		Detail{Key: "Name", Value: "Bo"},
	).SetWidth(80)
	r.AddDetail("Email", "b@x.com")

	got := r.Render()

	if !strings.Contains(got, "SUCCESS") || !strings.Contains(got, "User created") {
		t.Errorf("missing title:\n%s", got)
	}
	id, name, email := strings.Index(got, "11"), strings.Index(got, "Bo"), strings.Index(got, "b@x.com")
	if id < 0 || name < 0 || email < 0 || !(id < name && name < email) {
		t.Errorf("details out of order:\n%s", got)
	}
}

func TestResult_Failure(t *testing.T) {
	r := NewFailureResult("Could not delete user", errors.New("status 404"), []string{"Check the id"}).SetWidth(80)

	got := r.Render()
	for _, want := range []string{"FAILED", "Could not delete user", "status 404", "Troubleshooting:", "Check the id"} {
		if !strings.Contains(got, want) {
			t.Errorf("failure box missing %q", want)
		}
	}
}

func TestHeader_Render(t *testing.T) {
	h := NewHeader("delete user", "userdeck delete 3", Detail{Key: "Directory", Value: "http://localhost:8080"}).SetWidth(70)

	got := h.String()
	for _, want := range []string{"DELETE USER", "userdeck delete 3", "Directory:", "http://localhost:8080"} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestPrintJSON(t *testing.T) {
	p, out := newTestPrinter("")
	users := []directory.User{{ID: directory.NumericID(1), Name: "Ann", Email: "a@x.com", Phone: "1"}}

	if err := p.PrintJSON(users); err != nil {
		t.Fatalf("PrintJSON() error = %v", err)
	}
	if !strings.Contains(out.String(), `"id": 1`) || !strings.Contains(out.String(), `"name": "Ann"`) {
		t.Errorf("PrintJSON() = %s", out.String())
	}
}

func TestUserDetails(t *testing.T) {
	d := UserDetails(directory.User{ID: directory.NumericID(7), Name: "Cy", Email: "c@x.com", Phone: "3"})
	if len(d) != 4 || d[0].Value != "7" || d[3].Value != "3" {
		t.Errorf("UserDetails() = %+v", d)
	}
}
