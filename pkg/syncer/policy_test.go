package syncer

import (
	"testing"
	"time"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalNewerWins(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	present := func(ts time.Time) FileState { return FileState{Exists: true, ModTime: ts} }
	missing := FileState{}

	tests := []struct {
		name     string
		repo     FileState
		external FileState
		want     Decision
		reason   string
	}{
		{"external missing, repo present", present(base), missing, CopyToExternal, "missing externally"},
		{"external strictly newer", present(base), present(base.Add(time.Nanosecond)), CopyToExternal, "external is newer"},
		{"equal times", present(base), present(base), Skip, "same modification time"},
		{"external older", present(base), present(base.Add(-time.Hour)), Skip, "external is not newer"},
		{"repo missing", missing, present(base), Skip, "missing in repo"},
		{"both missing", missing, missing, Skip, "missing in repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ExternalNewerWins(tt.repo, tt.external)
			assert.Equal(t, tt.want, v.Decision)
			assert.Equal(t, tt.reason, v.Reason)
		})
	}
}

func TestExternalNewerWinsCopiesIffExternalStrictlyNewer(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	offsets := []time.Duration{-time.Hour, -time.Second, -time.Nanosecond, 0, time.Nanosecond, time.Second, time.Hour}

	for _, repoOff := range offsets {
		for _, extOff := range offsets {
			repoT, extT := base.Add(repoOff), base.Add(extOff)
			v := ExternalNewerWins(FileState{Exists: true, ModTime: repoT}, FileState{Exists: true, ModTime: extT})
			assert.Equal(t, extT.After(repoT), v.Decision == CopyToExternal,
				"repo=%s external=%s", repoOff, extOff)
		}
	}
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName(" external-newer-wins ")
	require.NoError(t, err)
	assert.Equal(t, Skip, p(FileState{}, FileState{}).Decision)

	_, err = PolicyByName("three-way-merge")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
	assert.Contains(t, err.Error(), "external-newer-wins")

	assert.Equal(t, []string{PolicyExternalNewerWins}, PolicyNames())
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "skip", Skip.String())
	assert.Equal(t, "copy-to-external", CopyToExternal.String())
	assert.Equal(t, "unknown", Decision(7).String())
}
