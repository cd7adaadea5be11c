// Package mapping implements the path mapping store: the list of tracked
// artifacts, each with a repo path and one real path per platform,
// persisted as repo_config.json at the repository root.
//
// The store is loaded in full at the start of a command and rewritten in
// full, atomically, by commands that change it.
//
//	store, err := mapping.Load(fs, repoRoot)
//	if errors.IsErrorCode(err, errors.ErrConfigNotFound) {
//	    store = mapping.New()
//	}
//	err = store.AddBinding("vimrc", platform.Linux, "/home/u/.vimrc")
//	err = store.Save(fs, repoRoot)
package mapping
