package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "file:// URI is converted to local path",
			uri:  "file:///Users/test/documents/file.pdf",
			want: "/Users/test/documents/file.pdf",
		},
		{
			name: "file:// URI with spaces",
			uri:  "file:///Users/test/my documents/file.pdf",
			want: "/Users/test/my documents/file.pdf",
		},
		{
			name: "bare path passes through unchanged",
			uri:  "/srv/pdf_files",
			want: "/srv/pdf_files",
		},
		{
			name: "relative path passes through unchanged",
			uri:  "pdf_files",
			want: "pdf_files",
		},
		{
			name: "empty string passes through",
			uri:  "",
			want: "",
		},
		{
			name: "home directory expands",
			uri:  "~/Documents",
			want: filepath.Join(home, "Documents"),
		},
		{
			name: "bare tilde expands",
			uri:  "~",
			want: home,
		},
		{
			name: "tilde inside a name is kept",
			uri:  "~backup/x",
			want: "~backup/x",
		},
		{
			name: "windows-style path passes through",
			uri:  "C:\\Users\\test\\file.pdf",
			want: "C:\\Users\\test\\file.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.uri))
		})
	}
}
