package localdump

import (
	"fmt"
	"path"
)

// pagePath gives <doc id>/<ancestor slugs...>/<page id>-<slug>.md.
func (dumper *DocDumper) pagePath(pageMetadata RemotePageMetadata) (RelativePath, error) {
	if dumper.doc == nil || dumper.doc.ID == "" {
		return "", fmt.Errorf("localdump: no doc to place page %s in", pageMetadata.Page.ID)
	}

	pathParts := []string{dumper.doc.ID}
	for _, ancestorID := range pageMetadata.AncestorIDs {
		ancestorMetadata, ok := dumper.remotePageMetadata[ancestorID]
		if !ok {
			return "", fmt.Errorf("localdump: couldn't retrieve page ID %s from cache", ancestorID)
		}
		pathParts = append(pathParts, ancestorMetadata.Slug)
	}

	slug := pageMetadata.Slug
	if slug == "" {
		slug = slugFor(pageMetadata.Page.Name)
	}

	pathParts = append(pathParts, fmt.Sprintf("%s-%s.md", pageMetadata.Page.ID, slug))

	return RelativePath(path.Join(pathParts...)), nil
}
