package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		// Basic cases
		{"main.go", "go"},
		{"pkg/widget.go", "go"},
		{"deep/nested/path/file.rs", "rs"},

		// Case folding
		{"Component.JSX", "jsx"},
		{"a.b.C", "c"}, // last dot wins, lowercased

		// No extension
		{"README", NoExtension},
		{"docs/LICENSE", NoExtension},
		{"trailing.", NoExtension}, // dot at the end counts as none
		{"", NoExtension},

		// Dotfiles and edge shapes
		{".gitignore", "gitignore"}, // leading dot still splits
		{"dir.with.dots/plain", NoExtension},
		{"dir.with.dots/archive.tar.gz", "gz"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtensionOf(tt.path))
		})
	}
}

func TestSubjectKey(t *testing.T) {
	subject := Subject{Owner: "acme", Repo: "widget", Token: "sekrit"}
	assert.Equal(t, "acme/widget", subject.Key())
}

// TestSizeBucketTables pins the label/bound tables against drift.
func TestSizeBucketTables(t *testing.T) {
	assert.Len(t, SizeBucketLabels, len(SizeBucketUpper)+1)
	assert.Equal(t, "500+", SizeBucketLabels[len(SizeBucketLabels)-1])
}
