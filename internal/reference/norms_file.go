// internal/reference/norms_file.go
package reference

import (
	"os"

	apperrors "career-assessment-workers/internal/common/errors"

	"gopkg.in/yaml.v3"
)

type normsDocument struct {
	Norms []NormEntry `yaml:"norms"`
}

// ParseNorms decodes a YAML norms document.
func ParseNorms(data []byte) (*NormTable, error) {
	entries, err := ParseNormEntries(data)
	if err != nil {
		return nil, err
	}
	return NewNormTable(entries)
}

// ParseNormEntries decodes and validates a YAML norms document, keeping
// the rows in file order.
func ParseNormEntries(data []byte) ([]NormEntry, error) {
	var doc normsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewInvalidNormsError(err.Error())
	}
	if _, err := NewNormTable(doc.Norms); err != nil {
		return nil, err
	}
	return doc.Norms, nil
}

// LoadNormsFile reads a YAML norms file.
func LoadNormsFile(path string) (*NormTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewNormsLoadFailedError(path, err)
	}
	return ParseNorms(data)
}
