package localdump

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// pruneDoc removes Markdown files under the doc's directory which this run didn't produce or
// confirm as fresh: deleted pages, and old locations of moved or renamed pages.
func (dumper *DocDumper) pruneDoc() error {
	docDir := path.Join(dumper.StorePath, dumper.doc.ID)

	localFiles, err := ListAllMarkdownFiles(docDir)
	if err != nil {
		return fmt.Errorf("localdump: failed to list *.md in %s: %w", docDir, err)
	}

	for _, file := range localFiles {
		relative, err := filepath.Rel(dumper.StorePath, file)
		if err != nil {
			return fmt.Errorf("localdump: failed to get relative path: %w", err)
		}

		if _, ok := dumper.freshLocalFiles[RelativePath(relative)]; ok {
			continue
		}

		dumper.Logger.Info("pruning", "path", relative)
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("localdump: failed to delete: %w", err)
		}
	}

	return nil
}
