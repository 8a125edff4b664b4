package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPublicURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		key     string
		want    string
	}{
		{"base without slash", "https://cdn.example.com", "predictions/Remy.json", "https://cdn.example.com/predictions/Remy.json"},
		{"base with path", "https://cdn.example.com/pool/", "/predictions/Remy.json", "https://cdn.example.com/pool/predictions/Remy.json"},
		{"no public base", "", "predictions/Remy.json", ""},
		{"empty key", "https://cdn.example.com", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &cloudflareR2Store{publicBaseURL: tt.baseURL}
			assert.Equal(t, tt.want, s.GetPublicURL(tt.key))
		})
	}
}

func TestNewCloudflareR2Store_RequiresCredentials(t *testing.T) {
	_, err := NewCloudflareR2Store(context.Background(), CloudflareR2Config{AccountID: "acc", BucketName: "b"})
	require.Error(t, err)
}
