package server_test

import (
	"testing"

	"asset-inventory/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_BodyLimitBytes(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"Configured", 4, 4 * 1024 * 1024},
		{"Zero", 0, server.DefaultBodyLimitMB * 1024 * 1024},
		{"Negative", -3, server.DefaultBodyLimitMB * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{BodyLimitMB: tt.limit}
			assert.Equal(t, tt.want, c.BodyLimitBytes())
		})
	}
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":9090", server.Config{Port: "9090"}.Address())
	assert.Equal(t, ":8080", server.Config{}.Address())
}
