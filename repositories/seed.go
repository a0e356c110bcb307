package repositories

import (
	"time"

	"portfolio-server/entities"
)

func ptr(s string) *string { return &s }

// aboutContent keeps the six-space indent on continuation lines as the page
// has always rendered it.
const aboutContent = "I believe the best way to master technology is by building real solutions to real problems.\n" +
	"      Every project teaches me something new, every bug teaches me patience, and every success\n" +
	"      fuels my curiosity for the next challenge.\n" +
	"\n" +
	"      Currently exploring the intersection of AI/ML and web development, creating tools that make\n" +
	"      complex data accessible and meaningful. I'm particularly drawn to projects that have social\n" +
	"      impact and push the boundaries of what's possible."

// seedSections returns the first-run hero and about sections.
func seedSections(now time.Time) []entities.PortfolioContent {
	return []entities.PortfolioContent{
		{
			ID:          1,
			Section:     entities.SectionHero,
			Title:       ptr("A curious Builder-learner"),
			Description: ptr("19 | DS undergrad | Diving into AI/ML, Code & startups |\n learning-failing-building software."),
			UpdatedAt:   now,
		},
		{
			ID:          2,
			Section:     entities.SectionAbout,
			Title:       ptr("My approach"),
			Description: ptr("I believe the best way to master technology is by building real solutions to real problems."),
			Content:     ptr(aboutContent),
			Metadata:    ptr(`{"yearsLearning":"2+","projectsBuilt":"15+"}`),
			UpdatedAt:   now,
		},
	}
}

// seedProjects returns the three featured sample projects with ids 1 to 3.
func seedProjects(now time.Time) []entities.Project {
	return []entities.Project{
		{
			ID:          1,
			Title:       "Smart Study Planner",
			Description: "AI-powered study scheduler that adapts to learning patterns and optimizes study sessions for maximum retention.",
			Tags:        []string{"React", "OpenAI", "Python"},
			GithubURL:   ptr("#"),
			DemoURL:     ptr("#"),
			Featured:    true,
			CreatedAt:   now,
		},
		{
			ID:          2,
			Title:       "Campus Connect",
			Description: "Social platform connecting students based on shared interests, study groups, and collaborative projects.",
			Tags:        []string{"Next.js", "Socket.io", "PostgreSQL"},
			GithubURL:   ptr("#"),
			DemoURL:     ptr("#"),
			Featured:    true,
			CreatedAt:   now,
		},
		{
			ID:          3,
			Title:       "Data Story Visualizer",
			Description: "Interactive tool that transforms complex datasets into compelling visual narratives for better understanding.",
			Tags:        []string{"D3.js", "Python", "FastAPI"},
			GithubURL:   ptr("#"),
			DemoURL:     ptr("#"),
			Featured:    true,
			CreatedAt:   now,
		},
	}
}
