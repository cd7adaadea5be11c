package paths

import (
	"path/filepath"
	"testing"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRepoPath(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "simple file", in: "x.txt", want: "x.txt"},
		{name: "nested", in: "nvim/init.lua", want: "nvim/init.lua"},
		{name: "cleaned", in: "./a//b/../c.txt", want: "a/c.txt"},
		{name: "backslashes normalized", in: `dir\file.txt`, want: "dir/file.txt"},
		{name: "hidden file", in: ".bashrc", want: ".bashrc"},
		{name: "gitignore is fine", in: ".gitignore", want: ".gitignore"},
		{name: "empty", in: "", wantErr: true},
		{name: "blank", in: "   ", wantErr: true},
		{name: "absolute", in: "/etc/passwd", wantErr: true},
		{name: "root", in: ".", wantErr: true},
		{name: "parent", in: "..", wantErr: true},
		{name: "escapes", in: "../outside.txt", wantErr: true},
		{name: "escapes after clean", in: "a/../../outside.txt", wantErr: true},
		{name: "git dir", in: ".git/config", wantErr: true},
		{name: "null byte", in: "a\x00b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateRepoPath(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrPathPolicy))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepoFilePath(t *testing.T) {
	got, err := RepoFilePath("/repo", "dir/file.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/repo", "dir", "file.txt"), got)

	_, err = RepoFilePath("/repo", "/etc/passwd")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathPolicy))
}

func TestContainsPath(t *testing.T) {
	assert.True(t, ContainsPath("/repo", "/repo/a.txt"))
	assert.True(t, ContainsPath("/repo", "/repo"))
	assert.True(t, ContainsPath("/repo", "/repo/..data/x"))
	assert.False(t, ContainsPath("/repo", "/other/a.txt"))
	assert.False(t, ContainsPath("/repo", "/repo/../etc"))
}

func TestSamePath(t *testing.T) {
	assert.True(t, SamePath("/repo/a.txt", "/repo/./b/../a.txt"))
	assert.False(t, SamePath("/repo/a.txt", "/repo/b.txt"))
}
