package localdump

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"
)

var (
	frontMatterStart = []byte("---\n")
	frontMatterEnd   = []byte("\n---\n")
)

// splitFrontMatter separates the YAML header from the Markdown that follows it.
func splitFrontMatter(source []byte) ([]byte, error) {
	if !bytes.HasPrefix(source, frontMatterStart) {
		return nil, errors.New("no front matter")
	}

	rest := source[len(frontMatterStart):]
	end := bytes.Index(rest, frontMatterEnd)
	if end < 0 {
		return nil, errors.New("unterminated front matter")
	}

	return rest[:end], nil
}

func ParseExistingMarkdown(storePath string, relativePath string) (LocalMarkdown, error) {
	fullPath := path.Join(storePath, relativePath)
	source, err := os.ReadFile(fullPath)
	if err != nil {
		return LocalMarkdown{}, fmt.Errorf("localdump: couldn't read file %s: %w", fullPath, err)
	}

	raw, err := splitFrontMatter(source)
	if err != nil {
		return LocalMarkdown{}, fmt.Errorf("localdump: couldn't find header of file %s: %w", fullPath, err)
	}

	var header MarkdownHeader
	if err := yaml.Unmarshal(raw, &header); err != nil {
		return LocalMarkdown{}, fmt.Errorf("localdump: couldn't parse header of file %s: %w", fullPath, err)
	}
	if header.PageID == "" {
		return LocalMarkdown{}, fmt.Errorf("localdump: header seems broken in %s", fullPath)
	}

	ancestors := []PageID{}
	for _, id := range header.AncestorIDs {
		ancestors = append(ancestors, PageID(id))
	}

	return LocalMarkdown{
		Content:      string(source),
		ID:           PageID(header.PageID),
		UpdatedAt:    header.UpdatedAt,
		AncestorIDs:  ancestors,
		RelativePath: RelativePath(relativePath),
	}, nil
}

// LoadLocalMarkdown is scoped to one doc, so that pruning only ever touches that doc's files.
func LoadLocalMarkdown(storePath string, docID string, logger hclog.Logger) (map[PageID]LocalMarkdown, error) {
	filenames, err := ListAllMarkdownFiles(path.Join(storePath, docID))
	if err != nil {
		return nil, fmt.Errorf("localdump: error loading Markdown files: %w", err)
	}

	localMarkdown := map[PageID]LocalMarkdown{}
	for _, file := range filenames {
		rel, err := filepath.Rel(storePath, file)
		if err != nil {
			return nil, fmt.Errorf("localdump: couldn't compute relative path of %s: %w", file, err)
		}

		md, err := ParseExistingMarkdown(storePath, rel)
		if err != nil {
			return nil, fmt.Errorf("localdump: couldn't load local Markdown file %s: %w", file, err)
		}

		if _, ok := localMarkdown[md.ID]; ok {
			logger.Warn("found duplicate page id, undefined behaviour will result", "id", md.ID, "path", md.RelativePath)
		}
		localMarkdown[md.ID] = md
	}

	return localMarkdown, nil
}

// returns absolute pathnames
func ListAllMarkdownFiles(inFolder string) ([]string, error) {
	if _, err := os.Stat(inFolder); errors.Is(err, os.ErrNotExist) {
		// probably the first run
		return []string{}, nil
	} else if err != nil {
		return []string{}, fmt.Errorf("localdump: error opening %s for file tree walk: %w", inFolder, err)
	}

	filenames := []string{}

	err := filepath.Walk(inFolder,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return fmt.Errorf("localdump: error during file tree walk: %w", err)
			}
			if !info.IsDir() && strings.HasSuffix(path, ".md") {
				filenames = append(filenames, path)
			}
			return nil
		})
	if err != nil {
		return []string{}, fmt.Errorf("localdump: error initialising file tree walk: %w", err)
	}

	return filenames, nil
}
