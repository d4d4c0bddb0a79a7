package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromReference(t *testing.T) {
	store := NewCloudinaryStore()

	tests := []struct {
		name string
		ref  string
		want string
		ok   bool
	}{
		{
			name: "versioned delivery url",
			ref:  "https://host/demo/image/upload/v123/services/images/abc.jpg",
			want: "services/images/abc",
			ok:   true,
		},
		{
			name: "unversioned delivery url",
			ref:  "https://res.cloudinary.com/demo/image/upload/sample.jpg",
			want: "sample",
			ok:   true,
		},
		{
			name: "bare id with extension",
			ref:  "plain_id.png",
			want: "plain_id",
			ok:   true,
		},
		{
			name: "bare id without extension",
			ref:  "abc123",
			want: "abc123",
			ok:   true,
		},
		{
			name: "folder starting with v is not a version",
			ref:  "https://res.cloudinary.com/demo/image/upload/variants/abc.jpg",
			want: "variants/abc",
			ok:   true,
		},
		{
			name: "free text",
			ref:  "not a valid url",
			ok:   false,
		},
		{
			name: "empty",
			ref:  "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := store.PublicIDFromReference(tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
