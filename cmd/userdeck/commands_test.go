package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/muurk/userdeck/internal/config"
	"github.com/muurk/userdeck/internal/directory"
	"github.com/muurk/userdeck/internal/sandbox"
)

// resetFlags restores every flag to its default so commands can run
// more than once in one process
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func newSandbox(t *testing.T) (*sandbox.Store, string) {
	t.Helper()
	store := sandbox.NewStore(sandbox.SampleUsers())
	srv := httptest.NewServer(sandbox.NewHandler(store).Router())
	t.Cleanup(srv.Close)
	return store, srv.URL
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	settings = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))

	full := append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...)
	rootCmd.SetArgs(full)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList_JSON(t *testing.T) {
	_, url := newSandbox(t)

	out, err := execute(t, "list", "--format", "json", "--base-url", url)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	var users []map[string]any
	if err := json.Unmarshal([]byte(out), &users); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(users) != 5 {
		t.Errorf("got %d users, want 5", len(users))
	}
}

func TestList_Table(t *testing.T) {
	_, url := newSandbox(t)

	out, err := execute(t, "list", "--base-url", url)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "Leanne") {
		t.Errorf("table should list sample users:\n%s", out)
	}
}

func TestList_BadFormat(t *testing.T) {
	_, url := newSandbox(t)

	if _, err := execute(t, "list", "--format", "xml", "--base-url", url); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestAdd(t *testing.T) {
	store, url := newSandbox(t)

	out, err := execute(t, "add", "--base-url", url, "--name", "Bo", "--email", "b@x.com", "--phone", "3")
	if err != nil {
		t.Fatalf("add error = %v", err)
	}
	if store.Len() != 6 {
		t.Errorf("store has %d users, want 6", store.Len())
	}
	if !strings.Contains(out, "User created") {
		t.Errorf("missing success box:\n%s", out)
	}
	if !strings.Contains(out, "ADD USER") || !strings.Contains(out, "userdeck add") || !strings.Contains(out, url) {
		t.Errorf("missing command header naming the directory:\n%s", out)
	}
}

func TestAdd_MissingField(t *testing.T) {
	store, url := newSandbox(t)

	_, err := execute(t, "add", "--base-url", url, "--name", "Bo", "--email", "")
	if err == nil || !strings.Contains(err.Error(), "--email") || !strings.Contains(err.Error(), "--phone") {
		t.Errorf("add error = %v, want email and phone named", err)
	}
	if store.Len() != 5 {
		t.Error("nothing should be sent when a field is empty")
	}
}

func TestEdit_KeepsUnchangedFields(t *testing.T) {
	store, url := newSandbox(t)

	if _, err := execute(t, "edit", "1", "--base-url", url, "--phone", "555-0199"); err != nil {
		t.Fatalf("edit error = %v", err)
	}

	u, err := store.Get(directory.NumericID(1))
	if err != nil {
		t.Fatal(err)
	}
	if u.Phone != "555-0199" {
		t.Errorf("Phone = %q", u.Phone)
	}
	if u.Name != "Leanne Graham" || u.Email != "Sincere@april.biz" {
		t.Errorf("unchanged fields were lost: %+v", u)
	}
}

func TestEdit_NothingToChange(t *testing.T) {
	_, url := newSandbox(t)

	if _, err := execute(t, "edit", "1", "--base-url", url); err == nil {
		t.Error("edit without field flags should fail")
	}
}

func TestEdit_UnknownUser(t *testing.T) {
	_, url := newSandbox(t)

	if _, err := execute(t, "edit", "99", "--base-url", url, "--name", "X"); err == nil {
		t.Error("unknown id should fail")
	}
}

func TestDelete(t *testing.T) {
	store, url := newSandbox(t)

	if _, err := execute(t, "delete", "2", "--yes", "--base-url", url); err != nil {
		t.Fatalf("delete error = %v", err)
	}
	if store.Len() != 4 {
		t.Errorf("store has %d users, want 4", store.Len())
	}
	if _, err := store.Get(directory.NumericID(2)); err == nil {
		t.Error("user 2 should be gone")
	}
}

func TestDelete_WithoutYesDeletesNothing(t *testing.T) {
	store, url := newSandbox(t)

	// Without a terminal this is refused; with one, the empty answer declines.
	_, _ = execute(t, "delete", "2", "--base-url", url)
	if store.Len() != 5 {
		t.Error("nothing should be deleted")
	}
}

func TestRemoteFailureIsReported(t *testing.T) {
	_, url := newSandbox(t)

	out, err := execute(t, "delete", "99", "--yes", "--base-url", url)
	if err == nil {
		t.Fatal("deleting an unknown id should fail")
	}
	if directory.StatusCode(err) != 404 {
		t.Errorf("StatusCode = %d, want 404", directory.StatusCode(err))
	}
	if !strings.Contains(out, "Could not delete user") {
		t.Errorf("missing failure box:\n%s", out)
	}
	if !strings.Contains(out, "DELETE USER") || !strings.Contains(out, "userdeck delete 99") {
		t.Errorf("missing command header:\n%s", out)
	}
}

func TestApplyFlags(t *testing.T) {
	resetFlags(rootCmd)
	if err := rootCmd.ParseFlags([]string{"--theme", "dark", "--timeout", "0s"}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resetFlags(rootCmd) })

	s := config.NewSettings()
	s.BaseURL = "http://from-file"
	applyFlags(rootCmd, s)

	if s.Theme != "dark" || s.Timeout != 0 {
		t.Errorf("changed flags not applied: %+v", s)
	}
	if s.BaseURL != "http://from-file" {
		t.Errorf("BaseURL = %q, unchanged flags must not override", s.BaseURL)
	}
}

func TestVersionSkipsConfig(t *testing.T) {
	resetFlags(rootCmd)
	settings = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version", "--config", "/nonexistent/dir/config.yaml"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "userdeck ") {
		t.Errorf("version output = %q", out.String())
	}
}
