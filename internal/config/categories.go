package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// CategoriesConfig maps hashtags to upstream catalog category IDs.
// The upstream API owns the category taxonomy; this file only decides
// which category a share defaults to when the user doesn't pick one.
type CategoriesConfig struct {
	DefaultCategoryID int            `yaml:"default_category_id"`
	Tags              map[string]int `yaml:"tags"` // tag (lower-case, no '#') -> category ID
}

// LoadCategories loads the category mapping file named by cfg.CategoriesFile.
// Returns nil without error if the file doesn't exist; the mapping is optional.
func LoadCategories(path string) (*CategoriesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Resolve picks a category for the given tags: the first tag with a mapping
// wins, otherwise the default. A nil config resolves to 0 (upstream default).
func (c *CategoriesConfig) Resolve(tags []string) int {
	if c == nil {
		return 0
	}
	for _, tag := range tags {
		if id, ok := c.Tags[tag]; ok {
			return id
		}
	}
	return c.DefaultCategoryID
}
