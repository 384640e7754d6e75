package object

// Hash is a 40-character hex-encoded SHA-1 object id, as Git stores them.
type Hash string

// ObjectType identifies the kind of a stored object.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeCommit ObjectType = "commit"
	TypeTag    ObjectType = "tag"
	TypeTree   ObjectType = "tree"
)

// knownTypes are the loose-object kinds a header may declare.
var knownTypes = map[ObjectType]bool{
	TypeBlob:   true,
	TypeCommit: true,
	TypeTag:    true,
	TypeTree:   true,
}

// TreeEntry is one record of a tree object's payload: an octal mode string,
// an entry name, and the binary id of the referenced object.
type TreeEntry struct {
	Mode string
	Name string
	ID   Hash
}

// HeaderLine is one "key value" line from a commit or tag header block.
// Order is significant and preserved.
type HeaderLine struct {
	Key   string
	Value string
}

// LooseObject is the decoded form of a single loose object.
//
// DeclaredSize always equals len(Payload); a mismatch between the header and
// the inflated stream is rejected during decode. The typed fields are
// populated according to Kind: Entries for trees, Headers+Message for
// commits and tags. Blobs carry only the raw payload.
type LooseObject struct {
	Kind         ObjectType
	DeclaredSize int64
	Payload      []byte

	Entries []TreeEntry  // trees
	Headers []HeaderLine // commits and tags
	Message string       // commits and tags
}
