package importer

import (
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// fileAuthor returns the author of the earliest commit touching path, or ""
// when the file is not under git control. Best effort: a note collection
// does not have to be a repository.
func fileAuthor(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}

	wt, err := repo.Worktree()
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return ""
	}
	rel = filepath.ToSlash(rel)

	iter, err := repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		slog.Debug("git log failed", "file", path, "error", err)
		return ""
	}
	defer iter.Close()

	// walk to the oldest commit that touched the file
	var earliest *object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		earliest = c
		return nil
	})
	if err != nil || earliest == nil {
		return ""
	}

	if earliest.Author.Name != "" {
		return earliest.Author.Name
	}
	return earliest.Author.Email
}
