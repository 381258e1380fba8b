package store

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/finflow/internal/logging"

	"gopkg.in/yaml.v3"
)

// DefaultTagsFile is looked up when no tag-map file is configured.
const DefaultTagsFile = "categories.yaml"

// CategoryStore locates and loads the category tag map.
type CategoryStore struct {
	TagsFile string
	logger   logging.Logger
}

// NewCategoryStore creates a store reading tags from tagsFile.
func NewCategoryStore(tagsFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CategoryStore{TagsFile: tagsFile, logger: logger}
}

// FindConfigFile looks for filename in the working directory, ./config,
// ./database and ~/.config/finflow.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", os.ErrNotExist
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "finflow", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// tagsDocument accepts both a top-level "tags:" key and a bare mapping.
type tagsDocument struct {
	Tags map[string]string `yaml:"tags"`
}

// LoadTagMappings reads raw tag -> category pairs. A missing file yields an
// empty map.
func (s *CategoryStore) LoadTagMappings() (map[string]string, error) {
	filename := s.TagsFile
	if filename == "" {
		filename = DefaultTagsFile
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Debug("Category tag file not found", logging.F(logging.FieldFile, filename))
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading category tag file: %w", err)
	}

	var doc tagsDocument
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Tags) > 0 {
		return doc.Tags, nil
	}

	var mappings map[string]string
	if err := yaml.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("error parsing category tag file: %w", err)
	}
	if mappings == nil {
		mappings = map[string]string{}
	}

	s.logger.Debug("Loaded category tags",
		logging.F(logging.FieldFile, path), logging.F(logging.FieldCount, len(mappings)))
	return mappings, nil
}
