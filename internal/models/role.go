package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Role is a closed enumeration of the access levels a user can hold.
type Role string

const (
	RoleReader Role = "Reader"
	RoleWriter Role = "Writer"
	RoleAdmin  Role = "Admin"
)

// ParseRole validates a raw role label against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(s)) {
	case RoleReader:
		return RoleReader, nil
	case RoleWriter:
		return RoleWriter, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// RoleList is the set of roles assigned to a user. It is persisted as a
// single comma-separated column so the schema stays portable across
// postgres and the sqlite test driver.
type RoleList []Role

// DefaultRoles is the role set assigned to newly registered users.
func DefaultRoles() RoleList {
	return RoleList{RoleReader}
}

// Has reports whether the list contains the given role.
func (r RoleList) Has(role Role) bool {
	for _, have := range r {
		if have == role {
			return true
		}
	}
	return false
}

// HasAny reports whether the list contains at least one of the given roles.
func (r RoleList) HasAny(roles ...Role) bool {
	for _, want := range roles {
		if r.Has(want) {
			return true
		}
	}
	return false
}

// Add appends the role if it is not already present and reports whether the
// list changed.
func (r *RoleList) Add(role Role) bool {
	if r.Has(role) {
		return false
	}
	*r = append(*r, role)
	return true
}

func (r RoleList) String() string {
	parts := make([]string, 0, len(r))
	for _, role := range r {
		parts = append(parts, string(role))
	}
	return strings.Join(parts, ", ")
}

// Value implements driver.Valuer.
func (r RoleList) Value() (driver.Value, error) {
	parts := make([]string, 0, len(r))
	for _, role := range r {
		parts = append(parts, string(role))
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner.
func (r *RoleList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into RoleList", src)
	}

	*r = (*r)[:0]
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		role, err := ParseRole(part)
		if err != nil {
			return err
		}
		*r = append(*r, role)
	}
	return nil
}
