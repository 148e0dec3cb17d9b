package localdump

import (
	"fmt"
	"reflect"
)

// Returns the local item that matches the remote, or false if our local copy is nonexistent or stale.
func (dumper *DocDumper) LocalVersionIsRecent(pageID PageID) (LocalMarkdown, bool, error) {
	remote, ok := dumper.remotePageMetadata[pageID]
	if !ok {
		return LocalMarkdown{}, false, fmt.Errorf("localdump: remote cache queried about unknown page ID: %s", pageID)
	}

	ourItem, ok := dumper.localMarkdownCache[pageID]
	if !ok {
		// we don't have it at all
		return LocalMarkdown{}, false, nil
	}

	// Coda has no version numbers, but updatedAt moves on every edit.  A move in the tree changes
	// the path, so that counts too.
	if remote.Page.UpdatedAt != "" &&
		remote.Page.UpdatedAt == ourItem.UpdatedAt &&
		reflect.DeepEqual(remote.AncestorIDs, ourItem.AncestorIDs) {
		return ourItem, true, nil
	}

	return LocalMarkdown{}, false, nil
}
