package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
profile:
  name: Michael Zhan
  headline: Full Stack Developer
  socials:
    - name: GitHub
      url: https://github.com/mikezhan88
projects:
  - id: shop
    title: E-commerce Platform
    category: web
    technologies: [React, Node.js]
  - id: tasks
    title: Task Management App
    category: mobile
skills:
  - name: Frontend
    skills:
      - name: React
        level: 90
`

const sampleTOML = `
[profile]
name = "Michael Zhan"

[[projects]]
id = "shop"
title = "E-commerce Platform"
category = "web"
technologies = ["React", "Node.js"]
live_url = "https://example.com/ecommerce"

[[skills]]
name = "Backend"

  [[skills.skills]]
  name = "Go"
  level = 80
`

func TestParseContent(t *testing.T) {
	t.Run("Should decode YAML", func(t *testing.T) {
		content, err := ParseContent([]byte(sampleYAML), ".yaml")
		require.NoError(t, err)
		assert.Equal(t, "Michael Zhan", content.Profile.Name)
		assert.Len(t, content.Projects, 2)
		assert.Equal(t, []string{"React", "Node.js"}, content.Projects[0].Technologies)
		assert.Equal(t, 90, content.Skills[0].Skills[0].Level)
	})

	t.Run("Should decode TOML by extension", func(t *testing.T) {
		content, err := ParseContent([]byte(sampleTOML), ".TOML")
		require.NoError(t, err)
		assert.Equal(t, "shop", content.Projects[0].ID)
		assert.Equal(t, "https://example.com/ecommerce", content.Projects[0].LiveURL)
		assert.Equal(t, "Go", content.Skills[0].Skills[0].Name)
	})

	t.Run("Should reject malformed input", func(t *testing.T) {
		_, err := ParseContent([]byte("projects: [unclosed"), ".yml")
		assert.Error(t, err)
	})
}

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing id", "projects:\n  - title: x\n    category: web\n", "has no id"},
		{"duplicate id", "projects:\n  - id: a\n    category: web\n  - id: a\n    category: web\n", "duplicate project id"},
		{"missing category", "projects:\n  - id: a\n", "has no category"},
		{"reserved category", "projects:\n  - id: a\n    category: all\n", "reserved category"},
		{"skill level out of range", "skills:\n  - name: Frontend\n    skills:\n      - name: React\n        level: 120\n", "outside 0..100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContent([]byte(tt.yaml), ".yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadContent(t *testing.T) {
	t.Run("Should fall back to built-in content when the file is missing", func(t *testing.T) {
		content, err := LoadContent(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultContent().Profile.Name, content.Profile.Name)
		assert.Len(t, content.Projects, 6)
	})

	t.Run("Should read a content file from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "content.toml")
		require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o600))

		content, err := LoadContent(path)
		require.NoError(t, err)
		assert.Len(t, content.Projects, 1)
	})

	t.Run("Should ship valid built-in content", func(t *testing.T) {
		content := DefaultContent()
		assert.NoError(t, ValidateContent(&content))
	})
}
