package ghclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseLinkHeader covers well-formed, multi-entry and malformed headers.
func TestParseLinkHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   map[string]string
	}{
		{
			name:   "empty header",
			header: "",
			want:   map[string]string{},
		},
		{
			name:   "single next link",
			header: `<https://api.github.com/repos/a/b/commits?page=2>; rel="next"`,
			want:   map[string]string{"next": "https://api.github.com/repos/a/b/commits?page=2"},
		},
		{
			name:   "next and last",
			header: `<https://x/p?page=2>; rel="next", <https://x/p?page=9>; rel="last"`,
			want: map[string]string{
				"next": "https://x/p?page=2",
				"last": "https://x/p?page=9",
			},
		},
		{
			name:   "rel not the first parameter",
			header: `<https://x/p?page=2>; title="stuff"; rel="next"`,
			want:   map[string]string{"next": "https://x/p?page=2"},
		},
		{
			name:   "unquoted rel",
			header: `<https://x/p?page=2>; rel=next`,
			want:   map[string]string{"next": "https://x/p?page=2"},
		},
		{
			name:   "missing angle brackets is skipped",
			header: `https://x/p?page=2; rel="next"`,
			want:   map[string]string{},
		},
		{
			name:   "entry without parameters is skipped",
			header: `<https://x/p?page=2>`,
			want:   map[string]string{},
		},
		{
			name:   "malformed entry does not poison the rest",
			header: `garbage, <https://x/p?page=3>; rel="next"`,
			want:   map[string]string{"next": "https://x/p?page=3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLinkHeader(tt.header))
		})
	}
}
