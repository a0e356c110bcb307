package repositories

import (
	"sort"
	"time"

	"portfolio-server/entities"
	"portfolio-server/schema"
)

// nullIfEmpty maps an absent or empty string to null.
func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

// normalizeTags resolves tags as sent by a client to a stored list: a list
// passes through, a non-empty scalar becomes a one-element list, anything else
// yields fallback.
func normalizeTags(t schema.Tags, fallback []string) []string {
	if t.IsList {
		return append([]string{}, t.List...)
	}
	if t.Scalar != "" {
		return []string{t.Scalar}
	}
	return fallback
}

func newContact(id int, in schema.InsertContact, now time.Time) entities.Contact {
	return entities.Contact{
		ID:          id,
		Name:        in.Name,
		Email:       in.Email,
		ProjectType: in.ProjectType,
		Message:     in.Message,
		CreatedAt:   now,
	}
}

// newPortfolioContent builds the full replacement record for a section.
func newPortfolioContent(id int64, section string, in schema.InsertPortfolioContent, now time.Time) entities.PortfolioContent {
	return entities.PortfolioContent{
		ID:          id,
		Section:     section,
		Title:       nullIfEmpty(in.Title),
		Description: nullIfEmpty(in.Description),
		Content:     nullIfEmpty(in.Content),
		ImageURL:    nullIfEmpty(in.ImageURL),
		Metadata:    nullIfEmpty(in.Metadata),
		UpdatedAt:   now,
	}
}

func newProject(id int, in schema.InsertProject, now time.Time) entities.Project {
	featured := false
	if in.Featured != nil {
		featured = *in.Featured
	}
	return entities.Project{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    nullIfEmpty(in.ImageURL),
		Tags:        normalizeTags(in.Tags, nil),
		GithubURL:   nullIfEmpty(in.GithubURL),
		DemoURL:     nullIfEmpty(in.DemoURL),
		Featured:    featured,
		CreatedAt:   now,
	}
}

// applyProjectPatch merges the set fields of patch over existing. The id and
// creation time are never touched.
func applyProjectPatch(existing entities.Project, patch schema.ProjectPatch) entities.Project {
	updated := existing.Clone()
	if patch.Title.Set {
		updated.Title = patch.Title.Value
	}
	if patch.Description.Set {
		updated.Description = patch.Description.Value
	}
	if patch.ImageURL.Set {
		updated.ImageURL = nullIfEmpty(patch.ImageURL.Value)
	}
	if patch.GithubURL.Set {
		updated.GithubURL = nullIfEmpty(patch.GithubURL.Value)
	}
	if patch.DemoURL.Set {
		updated.DemoURL = nullIfEmpty(patch.DemoURL.Value)
	}
	if patch.Featured.Set {
		updated.Featured = patch.Featured.Value
	}
	updated.Tags = normalizeTags(patch.Tags, updated.Tags)
	return updated
}

// sortContactsNewestFirst orders by creation time, newest first. Equal
// timestamps fall back to the higher id first.
func sortContactsNewestFirst(contacts []entities.Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		if !contacts[i].CreatedAt.Equal(contacts[j].CreatedAt) {
			return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
		}
		return contacts[i].ID > contacts[j].ID
	})
}

func sortProjectsNewestFirst(projects []entities.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		}
		return projects[i].ID > projects[j].ID
	})
}
