package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"Reader", RoleReader, false},
		{"Writer", RoleWriter, false},
		{"Admin", RoleAdmin, false},
		{"reader", "", true},
		{"", "", true},
		{"SuperAdmin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			role, err := ParseRole(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, role)
			}
		})
	}
}

func TestRoleListHas(t *testing.T) {
	roles := RoleList{RoleReader, RoleWriter}

	assert.True(t, roles.Has(RoleReader))
	assert.True(t, roles.Has(RoleWriter))
	assert.False(t, roles.Has(RoleAdmin))

	assert.True(t, roles.HasAny(RoleAdmin, RoleWriter))
	assert.False(t, roles.HasAny(RoleAdmin))
	assert.False(t, RoleList{}.HasAny(RoleReader, RoleWriter, RoleAdmin))
}

func TestRoleListAdd(t *testing.T) {
	roles := RoleList{RoleReader}

	assert.True(t, roles.Add(RoleWriter))
	assert.Equal(t, RoleList{RoleReader, RoleWriter}, roles)

	// Adding again is a no-op
	assert.False(t, roles.Add(RoleWriter))
	assert.Equal(t, RoleList{RoleReader, RoleWriter}, roles)
}

func TestRoleListValueScan(t *testing.T) {
	roles := RoleList{RoleReader, RoleWriter}

	value, err := roles.Value()
	require.NoError(t, err)
	assert.Equal(t, "Reader,Writer", value)

	var scanned RoleList
	require.NoError(t, scanned.Scan("Reader,Writer"))
	assert.Equal(t, roles, scanned)

	var fromBytes RoleList
	require.NoError(t, fromBytes.Scan([]byte("Admin")))
	assert.Equal(t, RoleList{RoleAdmin}, fromBytes)

	var empty RoleList
	require.NoError(t, empty.Scan(""))
	assert.Empty(t, empty)
}

func TestDefaultRoles(t *testing.T) {
	assert.Equal(t, RoleList{RoleReader}, DefaultRoles())
}
