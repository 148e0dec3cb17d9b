package localdump

import (
	"fmt"
	"regexp"
	"strings"
)

// maxDepth bounds how far up the page tree we'll walk before assuming a cycle.
const maxDepth = 20

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func canonicalise(title string) (string, error) {
	str := nonAlphanumeric.ReplaceAllString(title, " ")
	str = strings.ToLower(str)
	str = strings.Join(strings.Fields(str), "-")

	if len(str) > 101 {
		str = str[:100]
	}

	str = strings.Trim(str, "-")

	if len(str) < 2 {
		return "", fmt.Errorf("localdump: slug too short: title was '%s'", title)
	}

	return str, nil
}

// slugFor is canonicalise, except that titles without enough letters in them (emoji, "A") get a
// stand-in.
func slugFor(title string) string {
	slug, err := canonicalise(title)
	if err != nil {
		return "untitled"
	}
	return slug
}

func (dumper *DocDumper) BuildCacheFromPagelist() error {
	for id, item := range dumper.remotePageMetadata {
		ancestors, err := dumper.determineAncestors(item.Page.ID)
		if err != nil {
			return fmt.Errorf("localdump: couldn't determine ancestry for %s: %w", item.Page.ID, err)
		}

		item.AncestorIDs = ancestors
		item.Slug = slugFor(item.Page.Name)
		dumper.remotePageMetadata[id] = item
	}

	return nil
}

// determineAncestors returns the IDs of a page's ancestors, root first.
func (dumper *DocDumper) determineAncestors(pageID string) ([]PageID, error) {
	ancestors := []PageID{}

	current, ok := dumper.remotePageMetadata[PageID(pageID)]
	if !ok {
		return nil, fmt.Errorf("localdump: page %s isn't in the page list", pageID)
	}

	for i := 0; i < maxDepth; i++ {
		if current.Page.Parent == nil || current.Page.Parent.ID == "" {
			return ancestors, nil
		}

		parentID := PageID(current.Page.Parent.ID)
		ancestors = append([]PageID{parentID}, ancestors...)

		parent, ok := dumper.remotePageMetadata[parentID]
		if !ok {
			return nil, fmt.Errorf("localdump: ancestor %s of page %s doesn't exist", parentID, current.Page.ID)
		}
		current = parent
	}

	return nil, fmt.Errorf("localdump: exceeded ancestry maximum depth for %s", pageID)
}
