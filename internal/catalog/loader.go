package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a catalog from a JSON file: an array of field declarations.
// An empty path yields an empty catalog, which disables catalog-driven
// export and deletion policies but leaves every other engine operation
// available.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return New(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PII catalog: %w", err)
	}

	var fields []Field
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse PII catalog: %w", err)
	}

	return New(fields)
}
