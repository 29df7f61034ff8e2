package cache

// Keyer builds cache keys.
type Keyer interface {
	// DocumentKey keys a processed document by its content hash and the
	// options that shape the output.
	DocumentKey(contentHash string, opts DocumentKeyOpts) string

	// InspectKey keys the inventory report of a document.
	InspectKey(contentHash string) string
}

// DocumentKeyOpts are the processing options that change a document result.
type DocumentKeyOpts struct {
	Mode             string `json:"mode"`
	Fences           bool   `json:"fences"`
	Lists            bool   `json:"lists"`
	MaxLineLength    int    `json:"max_line_length"`
	PreserveUnicode  bool   `json:"preserve_unicode"`
	ValidateDiagrams bool   `json:"validate_diagrams"`

	// Version is the tool version; a new release invalidates old entries.
	Version string `json:"version"`
}

// DefaultKeyer produces "doc:<sha256>" and "inspect:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() *DefaultKeyer { return &DefaultKeyer{} }

// DocumentKey implements Keyer.
func (DefaultKeyer) DocumentKey(contentHash string, opts DocumentKeyOpts) string {
	return hashKey("doc", contentHash, opts)
}

// InspectKey implements Keyer.
func (DefaultKeyer) InspectKey(contentHash string) string {
	return hashKey("inspect", contentHash)
}

var _ Keyer = (*DefaultKeyer)(nil)
