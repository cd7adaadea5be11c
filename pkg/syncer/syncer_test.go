package syncer

import (
	"testing"
	"time"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/filesystem"
	"github.com/Duckilicious/sggit/pkg/mapping"
	"github.com/Duckilicious/sggit/pkg/platform"
	"github.com/Duckilicious/sggit/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const repoRoot = "/repo"

type fixture struct {
	mem    afero.Fs
	syncer *Syncer
	store  *mapping.Store
	base   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll(repoRoot, 0755))
	require.NoError(t, mem.MkdirAll("/ext", 0755))

	s := New(filesystem.NewAferoFS(mem), nil)
	stamp := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return stamp }

	return &fixture{
		mem:    mem,
		syncer: s,
		store:  mapping.New(),
		base:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) write(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.mem, path, []byte(content), 0644))
	require.NoError(t, f.mem.Chtimes(path, mtime, mtime))
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(f.mem, path)
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) track(t *testing.T, repoPath, realPath string) types.Pair {
	t.Helper()
	require.NoError(t, f.store.AddBinding(repoPath, platform.Linux, realPath))
	return types.Pair{RealPath: realPath, RepoPath: repoPath}
}

func TestPlan(t *testing.T) {
	f := newFixture(t)

	newer := f.track(t, "newer.txt", "/ext/newer.txt")
	f.write(t, "/repo/newer.txt", "repo", f.base)
	f.write(t, "/ext/newer.txt", "ext", f.base.Add(time.Minute))

	same := f.track(t, "same.txt", "/ext/same.txt")
	f.write(t, "/repo/same.txt", "repo", f.base)
	f.write(t, "/ext/same.txt", "ext", f.base)

	absent := f.track(t, "absent.txt", "/ext/sub/absent.txt")
	f.write(t, "/repo/absent.txt", "repo", f.base)

	orphan := f.track(t, "orphan.txt", "/ext/orphan.txt")
	f.write(t, "/ext/orphan.txt", "ext", f.base)

	items, err := f.syncer.Plan([]types.Pair{newer, same, absent, orphan}, repoRoot)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, CopyToExternal, items[0].Decision)
	assert.Equal(t, Skip, items[1].Decision)
	assert.Equal(t, CopyToExternal, items[2].Decision)
	assert.False(t, items[2].External.Exists)
	assert.Equal(t, Skip, items[3].Decision)
	assert.Equal(t, "missing in repo", items[3].Reason)

	assert.Equal(t, "ext", f.read(t, "/ext/newer.txt"), "plan performs no writes")
}

func TestApply(t *testing.T) {
	f := newFixture(t)

	newer := f.track(t, "newer.txt", "/ext/newer.txt")
	f.write(t, "/repo/newer.txt", "World", f.base)
	f.write(t, "/ext/newer.txt", "Hello", f.base.Add(time.Minute))

	older := f.track(t, "older.txt", "/ext/older.txt")
	f.write(t, "/repo/older.txt", "repo", f.base)
	f.write(t, "/ext/older.txt", "ext", f.base.Add(-time.Minute))

	absent := f.track(t, "absent.txt", "/ext/sub/absent.txt")
	f.write(t, "/repo/absent.txt", "fresh", f.base)

	items, err := f.syncer.Plan([]types.Pair{newer, older, absent}, repoRoot)
	require.NoError(t, err)

	result, err := f.syncer.Apply(items, repoRoot, f.store, platform.Linux)
	require.NoError(t, err)
	require.NoError(t, result.Err())
	assert.Len(t, result.Copied, 2)

	assert.Equal(t, "World", f.read(t, "/ext/newer.txt"))
	assert.Equal(t, "ext", f.read(t, "/ext/older.txt"))
	assert.Equal(t, "fresh", f.read(t, "/ext/sub/absent.txt"))
	assert.Equal(t, "repo", f.read(t, "/repo/older.txt"), "sync never writes into the repo")

	a, _ := f.store.Find("newer.txt")
	require.NotNil(t, a.Platforms[0].LastSynced)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *a.Platforms[0].LastSynced)

	o, _ := f.store.Find("older.txt")
	assert.Nil(t, o.Platforms[0].LastSynced)

	// The copied file carries the repo mtime, so a second round is a no-op.
	items, err = f.syncer.Plan([]types.Pair{newer, older, absent}, repoRoot)
	require.NoError(t, err)
	for _, item := range items {
		assert.Equal(t, Skip, item.Decision, item.Pair.RepoPath)
	}
}

func TestPlanRejectsEscapingRepoPath(t *testing.T) {
	f := newFixture(t)
	_, err := f.syncer.Plan([]types.Pair{{RealPath: "/ext/x", RepoPath: "../x"}}, repoRoot)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathPolicy))
}

func TestApplyWithCustomPolicy(t *testing.T) {
	f := newFixture(t)
	f.syncer.policy = func(repo, external FileState) Verdict {
		return Verdict{Decision: Skip, Reason: "frozen"}
	}

	pair := f.track(t, "x.txt", "/ext/x.txt")
	f.write(t, "/repo/x.txt", "repo", f.base)

	items, err := f.syncer.Plan([]types.Pair{pair}, repoRoot)
	require.NoError(t, err)
	assert.Equal(t, "frozen", items[0].Reason)

	result, err := f.syncer.Apply(items, repoRoot, nil, platform.Linux)
	require.NoError(t, err)
	assert.Empty(t, result.Copied)
}
