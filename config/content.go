package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"portfolio-backend/internal/domain"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadContent reads the portfolio content file. A missing file yields the
// built-in sample content; a malformed one is an error.
func LoadContent(path string) (*domain.PortfolioContent, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARNING: content file %s not found, serving built-in sample content", path)
		content := DefaultContent()
		return &content, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}

	content, err := ParseContent(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse content file %s: %w", path, err)
	}
	return content, nil
}

// ParseContent decodes TOML when ext is ".toml" and YAML otherwise
func ParseContent(data []byte, ext string) (*domain.PortfolioContent, error) {
	var content domain.PortfolioContent

	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &content); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &content); err != nil {
			return nil, err
		}
	}

	if err := ValidateContent(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

// ValidateContent checks invariants the catalog relies on
func ValidateContent(content *domain.PortfolioContent) error {
	seen := make(map[string]bool, len(content.Projects))
	for i, p := range content.Projects {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("project #%d has no id", i+1)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate project id %q", p.ID)
		}
		seen[p.ID] = true
		if strings.TrimSpace(p.Category) == "" {
			return fmt.Errorf("project %q has no category", p.ID)
		}
		if p.Category == domain.CategoryAll {
			return fmt.Errorf("project %q uses reserved category %q", p.ID, domain.CategoryAll)
		}
	}

	for _, category := range content.Skills {
		for _, skill := range category.Skills {
			if skill.Level < 0 || skill.Level > 100 {
				return fmt.Errorf("skill %q in %q has level %d outside 0..100", skill.Name, category.Name, skill.Level)
			}
		}
	}
	return nil
}
