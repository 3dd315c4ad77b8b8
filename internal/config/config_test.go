package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "valid development config",
			config: Config{Port: "8080", JWTSecret: "dev-secret", Env: "development"},
		},
		{
			name:    "missing port",
			config:  Config{JWTSecret: "dev-secret"},
			wantErr: "PORT is required",
		},
		{
			name:    "missing jwt secret",
			config:  Config{Port: "8080"},
			wantErr: "JWT_SECRET is required",
		},
		{
			name: "default secret in production",
			config: Config{
				Port:      "8080",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "production",
			},
			wantErr: "JWT_SECRET must be changed from the default value in production",
		},
		{
			name: "short secret in production",
			config: Config{
				Port:      "8080",
				JWTSecret: "short",
				Env:       "production",
			},
			wantErr: "JWT_SECRET must be at least 32 characters in production",
		},
		{
			name: "weak db password in production",
			config: Config{
				Port:       "8080",
				JWTSecret:  "0123456789abcdef0123456789abcdef",
				DBPassword: "password",
				Env:        "production",
			},
			wantErr: "a strong DB_PASSWORD is required in production",
		},
		{
			name: "valid production config",
			config: Config{
				Port:       "8080",
				JWTSecret:  "0123456789abcdef0123456789abcdef",
				DBPassword: "s3cure-db-pass",
				DBSSLMode:  "require",
				Env:        "production",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: ""}).IsProduction())
}
