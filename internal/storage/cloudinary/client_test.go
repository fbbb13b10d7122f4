package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPublicID(t *testing.T) {
	c := &Client{}

	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned url with folder",
			url:  "https://res.example.com/demo/image/upload/v1712345678/uploads/abc123.png",
			want: "uploads/abc123",
		},
		{
			name: "no version segment",
			url:  "https://res.example.com/demo/image/upload/uploads/abc123.jpg",
			want: "uploads/abc123",
		},
		{
			name: "no folder",
			url:  "https://res.example.com/demo/image/upload/v1/abc123.webp",
			want: "abc123",
		},
		{
			name: "no upload segment",
			url:  "https://res.example.com/demo/image/abc123.png",
			want: "",
		},
		{
			name: "garbage",
			url:  "://not a url",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.ExtractPublicID(tc.url))
		})
	}
}

func TestSignOrdersParams(t *testing.T) {
	c := &Client{apiSecret: "s3cr3t"}

	got := c.sign(map[string]string{
		"timestamp": "1712345678",
		"folder":    "uploads",
		"api_key":   "key",
	})

	sum := sha1.Sum([]byte("api_key=key&folder=uploads&timestamp=1712345678" + "s3cr3t"))
	assert.Equal(t, hex.EncodeToString(sum[:]), got)
}
