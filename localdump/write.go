package localdump

import (
	"fmt"
	"os"
	"path"
)

func (dumper *DocDumper) WriteMarkdownIntoLocal(contents LocalMarkdown) error {
	stat, err := os.Stat(dumper.StorePath)
	if err != nil {
		return fmt.Errorf("localdump: cannot stat '%s': %w", dumper.StorePath, err)
	}

	if !stat.IsDir() {
		return fmt.Errorf("localdump: local store path not a directory: '%s'", dumper.StorePath)
	}

	abs := path.Join(dumper.StorePath, string(contents.RelativePath))
	directory := path.Dir(abs)

	if !dumper.WriteMarkdown {
		// dry run
		return nil
	}

	if err = os.MkdirAll(directory, 0750); err != nil {
		return fmt.Errorf("localdump: couldn't create directory %s: %w", directory, err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return fmt.Errorf("localdump: couldn't create file %s: %w", abs, err)
	}

	defer f.Close()
	if _, err = f.WriteString(contents.Content); err != nil {
		return fmt.Errorf("localdump: couldn't write to file %s: %w", abs, err)
	}

	return nil
}
