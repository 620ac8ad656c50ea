package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/stylegen-labs/stylegen/internal/jsondoc"
)

// PackageJSON is the manifest file name in a project root.
const PackageJSON = "package.json"

// MergeIntoPackageJSON deep-merges the fragment into dir/package.json,
// creating the file when it does not exist, and returns the written document.
func MergeIntoPackageJSON(dir string, f Fragment) (jsondoc.Document, error) {
	path := filepath.Join(dir, PackageJSON)
	doc, err := jsondoc.Extend(path, f.Document())
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", PackageJSON, err)
	}
	return doc, nil
}

// PreviewPackageJSON returns what MergeIntoPackageJSON would write without
// touching the file.
func PreviewPackageJSON(dir string, f Fragment) (jsondoc.Document, error) {
	existing, _, err := jsondoc.Read(filepath.Join(dir, PackageJSON))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", PackageJSON, err)
	}
	return jsondoc.Merge(existing, f.Document(), jsondoc.Replace)
}
