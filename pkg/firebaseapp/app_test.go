package firebaseapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		want   int
	}{
		{"inline json", &Config{CredentialsJSON: `{"type":"service_account"}`, CredentialsFile: "/ignored.json"}, 1},
		{"file", &Config{CredentialsFile: "/etc/alertcast/firebase.json"}, 1},
		{"default credentials", &Config{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := clientOptions(tt.config)

			require.NoError(t, err)
			assert.Len(t, opts, tt.want)
		})
	}
}
