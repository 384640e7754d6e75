// Package gitdir provides read-only access to a Git repository's on-disk
// object database: directory listing, raw byte reads, and decoding of loose
// objects and pack files via pkg/object.
package gitdir

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"gitscope/pkg/object"
)

// Entry is one directory listing record.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64 // files only; 0 when the metadata lookup failed
}

// Service mediates filesystem access to the repository. It holds no state
// beyond its logger and is safe to call from any decode path.
type Service struct {
	log *zap.Logger
}

// NewService creates a Service. A nil logger disables logging.
func NewService(log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{log: log}
}

// FindGitDir resolves the repository's .git directory. It accepts either the
// repository root or the .git directory itself.
func FindGitDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if filepath.Base(abs) == ".git" {
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	gitDir := filepath.Join(abs, ".git")
	info, err := os.Stat(gitDir)
	if err != nil {
		return "", fmt.Errorf("no .git directory under %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", gitDir)
	}
	return gitDir, nil
}

// List returns the entries directly under path in directory order.
// Unreadable entries are skipped rather than failing the listing; the skip
// count is logged.
func (s *Service) List(path string) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(dirents))
	skipped := 0
	for _, d := range dirents {
		e := Entry{
			Name:  d.Name(),
			Path:  filepath.Join(path, d.Name()),
			IsDir: d.IsDir(),
		}
		if !d.IsDir() {
			info, err := d.Info()
			if err != nil {
				skipped++
				continue
			}
			e.Size = info.Size()
		}
		entries = append(entries, e)
	}
	if skipped > 0 {
		s.log.Warn("skipped unreadable directory entries",
			zap.String("dir", path), zap.Int("skipped", skipped))
	}
	return entries, nil
}

// ReadRaw reads a file's bytes.
func (s *Service) ReadRaw(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// ReadLoose reads and decodes a loose object file.
func (s *Service) ReadLoose(path string) (*object.LooseObject, error) {
	raw, err := s.ReadRaw(path)
	if err != nil {
		return nil, err
	}
	obj, err := object.ParseLoose(raw)
	if err != nil {
		return nil, fmt.Errorf("loose object %s: %w", path, err)
	}
	return obj, nil
}

// OpenPack reads a pack file, validates its signature, version, and trailer
// checksum, decodes every entry, and resolves delta chains.
func (s *Service) OpenPack(path string) (*object.Pack, error) {
	raw, err := s.ReadRaw(path)
	if err != nil {
		return nil, err
	}
	pack, err := object.ParsePack(raw)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", path, err)
	}
	if err := pack.Resolve(); err != nil {
		return nil, fmt.Errorf("pack %s: %w", path, err)
	}
	s.log.Debug("opened pack",
		zap.String("path", path), zap.Uint32("objects", pack.Header.NumObjects))
	return pack, nil
}

var looseObjectRe = regexp.MustCompile(`^[0-9a-f]{38}$`)

// IsPackFile reports whether a path names a pack file.
func IsPackFile(path string) bool {
	return strings.HasSuffix(path, ".pack")
}

// IsLooseObjectPath reports whether a path looks like a loose object:
// objects/<2 hex>/<38 hex>.
func IsLooseObjectPath(path string) bool {
	name := filepath.Base(path)
	if !looseObjectRe.MatchString(name) {
		return false
	}
	fan := filepath.Base(filepath.Dir(path))
	return len(fan) == 2 && isHex(fan)
}

func isHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
