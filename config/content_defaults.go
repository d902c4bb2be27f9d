package config

import "portfolio-backend/internal/domain"

// DefaultContent is the sample portfolio served when no content file exists
func DefaultContent() domain.PortfolioContent {
	return domain.PortfolioContent{
		Profile: domain.Profile{
			Name:     "Michael Zhan",
			Headline: "Full Stack Developer",
			Bio:      "I build web applications end to end, from responsive interfaces to the services behind them.",
			Location: "Los Angeles, CA",
			Email:    "mikezhan88@gmail.com",
			Socials: []domain.SocialLink{
				{Name: "GitHub", URL: "https://github.com/mikezhan88"},
				{Name: "LinkedIn", URL: "https://www.linkedin.com/in/michael-zhan-a437131b6/"},
				{Name: "Instagram", URL: "https://www.instagram.com/mikezhan88/"},
				{Name: "Email", URL: "mailto:mikezhan88@gmail.com"},
			},
		},
		Projects: []domain.Project{
			{
				ID:           "1",
				Title:        "E-commerce Platform",
				Description:  "A full-featured online store with product listings, cart functionality, and secure checkout.",
				Image:        "https://images.unsplash.com/photo-1563013544-824ae1b704d3?w=800&q=80",
				Category:     "web",
				Technologies: []string{"React", "Node.js", "MongoDB", "Stripe"},
				LiveURL:      "https://example.com/ecommerce",
				RepoURL:      "https://github.com/username/ecommerce",
				Details:      "Features include product search, filtering, user accounts, order history, and payment processing.",
			},
			{
				ID:           "2",
				Title:        "Weather Dashboard",
				Description:  "Interactive weather application showing forecasts and historical data with beautiful visualizations.",
				Image:        "https://images.unsplash.com/photo-1592210454359-9043f067919b?w=800&q=80",
				Category:     "web",
				Technologies: []string{"JavaScript", "Chart.js", "Weather API", "CSS"},
				LiveURL:      "https://example.com/weather",
				RepoURL:      "https://github.com/username/weather-app",
			},
			{
				ID:           "3",
				Title:        "Task Management App",
				Description:  "A productivity tool for organizing tasks with drag-and-drop functionality and team collaboration features.",
				Image:        "https://images.unsplash.com/photo-1540350394557-8d14678e7f91?w=800&q=80",
				Category:     "mobile",
				Technologies: []string{"React Native", "Firebase", "Redux"},
				LiveURL:      "https://example.com/taskapp",
				RepoURL:      "https://github.com/username/task-app",
			},
			{
				ID:           "4",
				Title:        "Fitness Tracker",
				Description:  "Mobile application for tracking workouts, nutrition, and progress with personalized recommendations.",
				Image:        "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=800&q=80",
				Category:     "mobile",
				Technologies: []string{"Flutter", "Firebase", "Health API"},
				LiveURL:      "https://example.com/fitness",
				RepoURL:      "https://github.com/username/fitness-tracker",
			},
			{
				ID:           "5",
				Title:        "Data Visualization Dashboard",
				Description:  "Interactive dashboard for visualizing complex datasets with filtering and export capabilities.",
				Image:        "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&q=80",
				Category:     "data",
				Technologies: []string{"D3.js", "React", "Python", "CSV Processing"},
				LiveURL:      "https://example.com/dataviz",
				RepoURL:      "https://github.com/username/data-dashboard",
			},
			{
				ID:           "6",
				Title:        "Portfolio Website",
				Description:  "Personal portfolio website showcasing projects and skills with a modern, responsive design.",
				Image:        "https://images.unsplash.com/photo-1517180102446-f3ece451e9d8?w=800&q=80",
				Category:     "web",
				Technologies: []string{"React", "Tailwind CSS", "Framer Motion"},
				LiveURL:      "https://example.com/portfolio",
				RepoURL:      "https://github.com/username/portfolio",
			},
		},
		Skills: []domain.SkillCategory{
			{
				Name: "Frontend",
				Skills: []domain.Skill{
					{Name: "React", Level: 90, Description: "Building interactive UIs with React and its ecosystem"},
					{Name: "TypeScript", Level: 85, Description: "Type-safe JavaScript development"},
					{Name: "CSS/Tailwind", Level: 80, Description: "Modern responsive designs with Tailwind CSS"},
					{Name: "Next.js", Level: 75, Description: "Server-side rendering and static site generation"},
				},
			},
			{
				Name: "Backend",
				Skills: []domain.Skill{
					{Name: "Node.js", Level: 85, Description: "Building scalable server-side applications"},
					{Name: "Express", Level: 80, Description: "RESTful API development"},
					{Name: "PostgreSQL", Level: 75, Description: "Relational database design and optimization"},
					{Name: "GraphQL", Level: 70, Description: "Efficient data querying and manipulation"},
				},
			},
			{
				Name: "Tools",
				Skills: []domain.Skill{
					{Name: "Git", Level: 90, Description: "Version control and collaboration"},
					{Name: "Docker", Level: 75, Description: "Containerization for consistent environments"},
					{Name: "CI/CD", Level: 80, Description: "Automated testing and deployment pipelines"},
					{Name: "AWS", Level: 70, Description: "Cloud infrastructure and services"},
				},
			},
		},
		Experience: []domain.Experience{
			{
				Role:    "Full Stack Developer",
				Company: "Freelance",
				Start:   "2022",
				End:     "Present",
				Highlights: []string{
					"Delivered responsive web applications for small businesses",
					"Built REST and GraphQL APIs backed by PostgreSQL",
				},
			},
		},
	}
}
