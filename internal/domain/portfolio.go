package domain

import (
	"context"
	"errors"
)

// CategoryAll selects every project regardless of category
const CategoryAll = "all"

var ErrProjectNotFound = errors.New("project not found")

type SocialLink struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	URL  string `json:"url" yaml:"url" toml:"url"`
}

type Profile struct {
	Name     string       `json:"name" yaml:"name" toml:"name"`
	Headline string       `json:"headline" yaml:"headline" toml:"headline"`
	Bio      string       `json:"bio" yaml:"bio" toml:"bio"`
	Location string       `json:"location" yaml:"location" toml:"location"`
	Email    string       `json:"email" yaml:"email" toml:"email"`
	Socials  []SocialLink `json:"socials" yaml:"socials" toml:"socials"`
}

type Project struct {
	ID           string   `json:"id" yaml:"id" toml:"id"`
	Title        string   `json:"title" yaml:"title" toml:"title"`
	Description  string   `json:"description" yaml:"description" toml:"description"`
	Image        string   `json:"image" yaml:"image" toml:"image"`
	Images       []string `json:"images,omitempty" yaml:"images" toml:"images"`
	Category     string   `json:"category" yaml:"category" toml:"category"`
	Technologies []string `json:"technologies" yaml:"technologies" toml:"technologies"`
	LiveURL      string   `json:"live_url,omitempty" yaml:"live_url" toml:"live_url"`
	RepoURL      string   `json:"repo_url,omitempty" yaml:"repo_url" toml:"repo_url"`
	Details      string   `json:"details,omitempty" yaml:"details" toml:"details"`
}

type Skill struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Level       int    `json:"level" yaml:"level" toml:"level"`
	Description string `json:"description,omitempty" yaml:"description" toml:"description"`
}

type SkillCategory struct {
	Name   string  `json:"name" yaml:"name" toml:"name"`
	Skills []Skill `json:"skills" yaml:"skills" toml:"skills"`
}

type Experience struct {
	Role       string   `json:"role" yaml:"role" toml:"role"`
	Company    string   `json:"company" yaml:"company" toml:"company"`
	Start      string   `json:"start" yaml:"start" toml:"start"`
	End        string   `json:"end" yaml:"end" toml:"end"`
	Highlights []string `json:"highlights" yaml:"highlights" toml:"highlights"`
}

// PortfolioContent is the static site content loaded at startup
type PortfolioContent struct {
	Profile    Profile         `json:"profile" yaml:"profile" toml:"profile"`
	Projects   []Project       `json:"projects" yaml:"projects" toml:"projects"`
	Skills     []SkillCategory `json:"skills" yaml:"skills" toml:"skills"`
	Experience []Experience    `json:"experience" yaml:"experience" toml:"experience"`
}

type PortfolioUsecase interface {
	Profile(ctx context.Context) Profile
	Categories(ctx context.Context) []string
	ListProjects(ctx context.Context, category string) []Project
	GetProject(ctx context.Context, id string) (*Project, error)
	Skills(ctx context.Context) []SkillCategory
	Experience(ctx context.Context) []Experience
}
