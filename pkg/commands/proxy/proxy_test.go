package proxy

import (
	"bytes"
	"context"
	"testing"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitArgs(t *testing.T) {
	assert.Equal(t, []string{"log", "--oneline", "-n", "1"}, ProxyOptions{Command: " log  --oneline -n 1 "}.GitArgs())
	assert.Equal(t, []string{"status"}, ProxyOptions{Command: "ignored", Args: []string{"status"}}.GitArgs())
	assert.Empty(t, ProxyOptions{}.GitArgs())
}

func TestProxy(t *testing.T) {
	testutil.RequireGit(t)
	testutil.SetGitIdentity(t)

	t.Run("streams output", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		env.InitRepo("linux")

		var stdout, stderr bytes.Buffer
		result, err := Proxy(context.Background(), ProxyOptions{
			Command: "log --format=%s",
			Stdout:  &stdout,
			Stderr:  &stderr,
		})
		require.NoError(t, err)
		assert.Equal(t, "init\n", stdout.String())
		assert.Equal(t, "git log --format=%s", result.Message)
	})

	t.Run("git failure", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		env.InitRepo("linux")

		var stdout, stderr bytes.Buffer
		_, err := Proxy(context.Background(), ProxyOptions{
			Args:   []string{"no-such-subcommand"},
			Stdout: &stdout,
			Stderr: &stderr,
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrVCS))
		assert.NotEmpty(t, stderr.String())
	})

	t.Run("empty command", func(t *testing.T) {
		_, err := Proxy(context.Background(), ProxyOptions{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}
