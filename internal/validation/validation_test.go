package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid simple", "alice", false},
		{"valid with separators", "soup_chef-99", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 31), true},
		{"invalid characters", "chef!", true},
		{"leading underscore", "_chef", true},
		{"trailing hyphen", "chef-", true},
		{"minimum length", "abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))
	assert.NoError(t, ValidatePassword("password123"))
	assert.NoError(t, ValidatePassword(strings.Repeat("x", 72)))
}
