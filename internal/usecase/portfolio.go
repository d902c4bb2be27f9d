package usecase

import (
	"context"
	"strings"

	"portfolio-backend/internal/domain"
)

type portfolioUsecase struct {
	content    domain.PortfolioContent
	categories []string
	byID       map[string]int
}

// NewPortfolioUsecase serves read-only content loaded at startup
func NewPortfolioUsecase(content domain.PortfolioContent) domain.PortfolioUsecase {
	uc := &portfolioUsecase{
		content:    content,
		categories: []string{domain.CategoryAll},
		byID:       make(map[string]int, len(content.Projects)),
	}

	seen := map[string]bool{}
	for i, p := range content.Projects {
		uc.byID[p.ID] = i
		if !seen[p.Category] {
			seen[p.Category] = true
			uc.categories = append(uc.categories, p.Category)
		}
	}
	return uc
}

func (uc *portfolioUsecase) Profile(ctx context.Context) domain.Profile {
	return uc.content.Profile
}

// Categories returns "all" followed by each project category in first-seen order
func (uc *portfolioUsecase) Categories(ctx context.Context) []string {
	return append([]string(nil), uc.categories...)
}

// ListProjects filters by exact category; "" and "all" return every project
func (uc *portfolioUsecase) ListProjects(ctx context.Context, category string) []domain.Project {
	category = strings.TrimSpace(category)
	projects := make([]domain.Project, 0, len(uc.content.Projects))
	for _, p := range uc.content.Projects {
		if category == "" || category == domain.CategoryAll || p.Category == category {
			projects = append(projects, p)
		}
	}
	return projects
}

func (uc *portfolioUsecase) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	i, ok := uc.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	project := uc.content.Projects[i]
	return &project, nil
}

func (uc *portfolioUsecase) Skills(ctx context.Context) []domain.SkillCategory {
	return uc.content.Skills
}

func (uc *portfolioUsecase) Experience(ctx context.Context) []domain.Experience {
	return uc.content.Experience
}
