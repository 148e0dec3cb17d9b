package localdump

import "github.com/toothbrush/coda-tools/coda"

type LocalMarkdown struct {
	// contents of the file
	Content string

	// original Coda ID of the page
	ID PageID

	// updatedAt of the page when it was dumped
	UpdatedAt string

	AncestorIDs []PageID

	// path relative to DUMP location (e.g., ~/coda)
	RelativePath RelativePath
}

// MarkdownHeader is the YAML front matter of every dumped page.
type MarkdownHeader struct {
	Title         string   `yaml:"title"`
	Subtitle      string   `yaml:"subtitle,omitempty"`
	PageID        string   `yaml:"page_id"`
	DocID         string   `yaml:"doc_id"`
	DocName       string   `yaml:"doc_name,omitempty"`
	URI           string   `yaml:"uri"`
	UpdatedAt     string   `yaml:"updated_at"`
	Author        string   `yaml:"author,omitempty"`
	AncestorNames []string `yaml:"ancestor_names,flow"`
	AncestorIDs   []string `yaml:"ancestor_ids,flow"`
}

// RemotePageMetadata is what we build up from the page listing.  Pages refer to their parent only,
// so the whole doc has to be listed before any page knows its place in the tree.
type RemotePageMetadata struct {
	Slug        string
	AncestorIDs []PageID

	Page coda.Page
}

type PageID string
type RelativePath string
