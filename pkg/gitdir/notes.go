package gitdir

import (
	"path/filepath"
	"strings"
)

// wellKnownNotes maps slash-separated paths relative to the .git directory
// onto one-line descriptions shown in the tree view.
var wellKnownNotes = map[string]string{
	".":              "the repository's metadata directory",
	"HEAD":           "points at the currently checked out ref",
	"config":         "repository-local configuration",
	"description":    "name used by gitweb; unused by most tools",
	"index":          "the staging area (binary format)",
	"packed-refs":    "refs compacted out of refs/ into one file",
	"FETCH_HEAD":     "where the last fetch left each remote ref",
	"ORIG_HEAD":      "previous HEAD, saved before drastic moves",
	"COMMIT_EDITMSG": "scratch file for the last commit message",
	"objects":        "the object database: loose objects and packs",
	"objects/pack":   "pack files: many objects delta-compressed together",
	"objects/info":   "auxiliary object store metadata",
	"refs":           "branch and tag pointers",
	"refs/heads":     "local branches, one file per branch",
	"refs/tags":      "tags, one file per tag",
	"refs/remotes":   "last known positions of remote branches",
	"hooks":          "scripts run on repository events",
	"info":           "auxiliary metadata (e.g. local excludes)",
	"info/exclude":   "ignore patterns local to this clone",
	"logs":           "reflogs: where each ref has pointed over time",
	"logs/HEAD":      "reflog for HEAD itself",
}

// noteFor resolves the educational note for path, relative to gitRoot.
// Loose object fan-out directories and their contents are recognized by
// shape rather than by name.
func noteFor(gitRoot, path string) string {
	rel, err := filepath.Rel(gitRoot, path)
	if err != nil {
		return ""
	}
	rel = filepath.ToSlash(rel)
	if note, ok := wellKnownNotes[rel]; ok {
		return note
	}

	switch {
	case IsLooseObjectPath(path):
		return "a loose object (zlib: \"<kind> <size>\\0\" + payload)"
	case strings.HasPrefix(rel, "objects/") && len(filepath.Base(rel)) == 2 && isHex(filepath.Base(rel)):
		return "fan-out directory: first two hex digits of object ids"
	case IsPackFile(path):
		return "pack file (PACK v2 + entries + SHA-1 trailer)"
	case strings.HasSuffix(rel, ".idx"):
		return "pack index: object id to pack offset lookup"
	case strings.HasPrefix(rel, "refs/heads/"):
		return "branch: a file holding a commit id"
	case strings.HasPrefix(rel, "refs/tags/"):
		return "tag pointer"
	}
	return ""
}
