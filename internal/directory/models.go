package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ID is an opaque user identifier assigned by the directory.
//
// The zero value means "not assigned yet" (a draft). IDs remember whether
// the directory sent them as JSON numbers or strings so they are written
// back in the same form.
type ID struct {
	raw     string
	numeric bool
}

// NumericID returns an ID that encodes as a JSON number.
func NumericID(n int64) ID {
	return ID{raw: strconv.FormatInt(n, 10), numeric: true}
}

// StringID returns an ID that encodes as a JSON string.
func StringID(s string) ID {
	return ID{raw: s}
}

// ParseID interprets command-line or key input. Canonical integers
// ("42", not "042") become numeric IDs, anything else a string ID.
func ParseID(s string) ID {
	s = strings.TrimSpace(s)
	if s == "" {
		return ID{}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return NumericID(n)
	}
	return StringID(s)
}

// IsZero reports whether the ID is unassigned.
func (id ID) IsZero() bool {
	return id.raw == ""
}

// IsNumeric reports whether the ID encodes as a JSON number.
func (id ID) IsNumeric() bool {
	return id.numeric
}

// String returns the ID as it appears in a URL path.
func (id ID) String() string {
	return id.raw
}

// MarshalJSON implements json.Marshaler
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		*id = StringID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: must be a number or string", string(data))
	}
	*id = ID{raw: n.String(), numeric: true}
	return nil
}

// User is a record held by the user directory.
type User struct {
	ID    ID
	Name  string
	Email string
	Phone string

	// Extra holds any other fields the directory returned (jsonplaceholder
	// sends username, address, website and company). They are kept verbatim
	// and written back on update.
	Extra map[string]json.RawMessage
}

// knownFields are the attributes User models directly.
var knownFields = map[string]bool{"id": true, "name": true, "email": true, "phone": true}

// NewDraft returns a user that has not been created yet.
func NewDraft(name, email, phone string) User {
	return User{Name: name, Email: email, Phone: phone}
}

// WithContact returns a copy of u with name, email and phone replaced.
// The ID and any extra fields are preserved.
func (u User) WithContact(name, email, phone string) User {
	out := u.Clone()
	out.Name = name
	out.Email = email
	out.Phone = phone
	return out
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	out := u
	if u.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(u.Extra))
		for k, v := range u.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// MissingFields returns the names of required fields that are empty, in
// form order. Whitespace counts as a value, as with an HTML required field.
func (u User) MissingFields() []string {
	var missing []string
	if u.Name == "" {
		missing = append(missing, "name")
	}
	if u.Email == "" {
		missing = append(missing, "email")
	}
	if u.Phone == "" {
		missing = append(missing, "phone")
	}
	return missing
}

// MarshalJSON writes id (when assigned), name, email and phone, followed by
// extra fields in key order.
func (u User) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	writeField := func(key string, value []byte) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
	}

	if !u.ID.IsZero() {
		id, err := u.ID.MarshalJSON()
		if err != nil {
			return nil, err
		}
		writeField("id", id)
	}
	for _, f := range []struct{ key, value string }{
		{"name", u.Name},
		{"email", u.Email},
		{"phone", u.Phone},
	} {
		v, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		writeField(f.key, v)
	}

	keys := make([]string, 0, len(u.Extra))
	for k := range u.Extra {
		if !knownFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeField(k, u.Extra[k])
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (u *User) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var out User
	if raw, ok := fields["id"]; ok {
		if err := out.ID.UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	for key, dst := range map[string]*string{"name": &out.Name, "email": &out.Email, "phone": &out.Phone} {
		raw, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	for k, v := range fields {
		if knownFields[k] {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = v
	}

	*u = out
	return nil
}
