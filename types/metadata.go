package types

// MetadataFileName is the descriptor file looked up inside each fetched tree.
const MetadataFileName = "tree-sitter.json"

// MetadataDescriptor is the per-source-tree metadata file declaring the
// grammars a repository provides. Only the fields the registry merge
// consumes are modeled; unknown fields are ignored.
type MetadataDescriptor struct {
	// Grammars lists the declared grammars. May be empty.
	Grammars []GrammarDecl `json:"grammars"`
}

// GrammarDecl is one grammar declaration inside a metadata descriptor.
type GrammarDecl struct {
	// Name is the declared grammar name.
	Name string `json:"name"`
	// FileTypes lists file extensions the grammar handles.
	FileTypes []string `json:"file-types,omitempty"`
}

// Extension returns the grammar's declared extension: the first entry of
// its file-type list, or the empty string when none is declared.
func (g GrammarDecl) Extension() string {
	if len(g.FileTypes) == 0 {
		return ""
	}
	return g.FileTypes[0]
}
