package gitdir

import "go.uber.org/zap"

// Node is one filesystem entry in the repository tree snapshot. A directory
// owns its children; files never have any. The tree reflects the listing at
// build time and is rebuilt wholesale on refresh, never patched in place.
type Node struct {
	Name     string
	Path     string
	IsDir    bool
	Size     int64
	Note     string // educational note for recognized .git paths
	Children []*Node
}

// BuildTree snapshots the directory rooted at root. Entries List skipped are
// simply absent; a failed recursion into a subdirectory leaves that
// directory as a leaf rather than aborting the build.
func (s *Service) BuildTree(root string) (*Node, error) {
	entries, err := s.List(root)
	if err != nil {
		return nil, err
	}
	node := &Node{
		Name:  baseName(root),
		Path:  root,
		IsDir: true,
		Note:  noteFor(root, root),
	}
	node.Children = s.buildChildren(root, root, entries)
	return node, nil
}

func (s *Service) buildChildren(gitRoot, dir string, entries []Entry) []*Node {
	children := make([]*Node, 0, len(entries))
	for _, e := range entries {
		child := &Node{
			Name:  e.Name,
			Path:  e.Path,
			IsDir: e.IsDir,
			Size:  e.Size,
			Note:  noteFor(gitRoot, e.Path),
		}
		if e.IsDir {
			sub, err := s.List(e.Path)
			if err != nil {
				s.log.Warn("unreadable subdirectory", zap.String("dir", e.Path), zap.Error(err))
			} else {
				child.Children = s.buildChildren(gitRoot, e.Path, sub)
			}
		}
		children = append(children, child)
	}
	return children
}

// CountNodes returns the total number of nodes in the subtree, root included.
func (n *Node) CountNodes() int {
	total := 1
	for _, c := range n.Children {
		total += c.CountNodes()
	}
	return total
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
