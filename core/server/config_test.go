package server_test

import (
	"testing"

	"dependency-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     server.Config
		address string
		auth    bool
	}{
		{"Defaults", server.Config{}, ":8080", false},
		{"Port And Key", server.Config{Port: "9000", ApiKey: "secret"}, ":9000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.address, tt.cfg.Address())
			assert.Equal(t, tt.auth, tt.cfg.AuthEnabled())
		})
	}
}
