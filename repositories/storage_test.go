package repositories

import (
	"encoding/json"
	"errors"
	"testing"

	"portfolio-server/entities"
	"portfolio-server/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storageFactory returns a freshly seeded store.
type storageFactory func(t *testing.T) Storage

func str(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func projectIDs(projects []entities.Project) []int {
	ids := make([]int, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}

// runStorageContract checks the behaviour every Storage implementation
// shares.
func runStorageContract(t *testing.T, newStore storageFactory) {
	t.Run("seed has hero, about and three featured projects", func(t *testing.T) {
		s := newStore(t)

		hero, err := s.GetPortfolioContent(entities.SectionHero)
		require.NoError(t, err)
		require.NotNil(t, hero)
		assert.Equal(t, "A curious Builder-learner", *hero.Title)

		about, err := s.GetPortfolioContent(entities.SectionAbout)
		require.NoError(t, err)
		require.NotNil(t, about)
		require.NotNil(t, about.Metadata)
		assert.JSONEq(t, `{"yearsLearning":"2+","projectsBuilt":"15+"}`, *about.Metadata)

		projects, err := s.GetProjects()
		require.NoError(t, err)
		require.Len(t, projects, 3)
		for _, p := range projects {
			assert.True(t, p.Featured, "project %d", p.ID)
		}
		assert.ElementsMatch(t, []int{1, 2, 3}, projectIDs(projects))
	})

	t.Run("missing lookups return nil without error", func(t *testing.T) {
		s := newStore(t)

		user, err := s.GetUser(99)
		require.NoError(t, err)
		assert.Nil(t, user)

		user, err = s.GetUserByUsername("nobody")
		require.NoError(t, err)
		assert.Nil(t, user)

		content, err := s.GetPortfolioContent("skills")
		require.NoError(t, err)
		assert.Nil(t, content)
	})

	t.Run("users get sequential ids and unique usernames", func(t *testing.T) {
		s := newStore(t)

		first, err := s.CreateUser(schema.InsertUser{Username: "ada", Password: "pw1"})
		require.NoError(t, err)
		second, err := s.CreateUser(schema.InsertUser{Username: "grace", Password: "pw2"})
		require.NoError(t, err)
		assert.Equal(t, first.ID+1, second.ID)

		got, err := s.GetUser(first.ID)
		require.NoError(t, err)
		assert.Equal(t, first, got)

		byName, err := s.GetUserByUsername("grace")
		require.NoError(t, err)
		assert.Equal(t, second, byName)

		_, err = s.CreateUser(schema.InsertUser{Username: "ada", Password: "other"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("contacts are stamped and listed newest first", func(t *testing.T) {
		s := newStore(t)
		in := schema.InsertContact{Name: "Ada", Email: "ada@example.com", ProjectType: "freelance", Message: "hello"}

		first, err := s.CreateContact(in)
		require.NoError(t, err)
		assert.False(t, first.CreatedAt.IsZero())
		assert.Equal(t, in.Name, first.Name)
		assert.Equal(t, in.Email, first.Email)
		assert.Equal(t, in.ProjectType, first.ProjectType)
		assert.Equal(t, in.Message, first.Message)

		in.Message = "hello again"
		second, err := s.CreateContact(in)
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)

		contacts, err := s.GetContacts()
		require.NoError(t, err)
		require.Len(t, contacts, 2)
		assert.Equal(t, second.ID, contacts[0].ID)
		assert.Equal(t, first.ID, contacts[1].ID)
	})

	t.Run("section update replaces every field", func(t *testing.T) {
		s := newStore(t)
		before, err := s.GetPortfolioContent(entities.SectionHero)
		require.NoError(t, err)

		updated, err := s.UpdatePortfolioContent(entities.SectionHero, schema.InsertPortfolioContent{Title: str("X")})
		require.NoError(t, err)
		assert.Equal(t, before.ID, updated.ID)
		assert.Equal(t, entities.SectionHero, updated.Section)
		assert.Equal(t, "X", *updated.Title)
		assert.Nil(t, updated.Description)
		assert.Nil(t, updated.Content)
		assert.Nil(t, updated.ImageURL)
		assert.Nil(t, updated.Metadata)
		assert.False(t, updated.UpdatedAt.Before(before.UpdatedAt))

		got, err := s.GetPortfolioContent(entities.SectionHero)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Equal(t, "X", *got.Title)
	})

	t.Run("section update creates missing sections with a fresh id", func(t *testing.T) {
		s := newStore(t)

		skills, err := s.UpdatePortfolioContent("skills", schema.InsertPortfolioContent{Content: str("Go"), Title: str("")})
		require.NoError(t, err)
		assert.Greater(t, skills.ID, int64(2))
		assert.Nil(t, skills.Title)
		assert.Equal(t, "Go", *skills.Content)

		contact, err := s.UpdatePortfolioContent("contact", schema.InsertPortfolioContent{})
		require.NoError(t, err)
		assert.NotEqual(t, skills.ID, contact.ID)

		again, err := s.UpdatePortfolioContent("skills", schema.InsertPortfolioContent{Content: str("Go, SQL")})
		require.NoError(t, err)
		assert.Equal(t, skills.ID, again.ID)
	})

	t.Run("section update requires a section name", func(t *testing.T) {
		s := newStore(t)
		_, err := s.UpdatePortfolioContent("", schema.InsertPortfolioContent{Title: str("X")})
		var verr *schema.ValidationError
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("create project then list returns it", func(t *testing.T) {
		s := newStore(t)

		created, err := s.CreateProject(schema.InsertProject{
			Title:       "Portfolio API",
			Description: "Content backend",
			ImageURL:    str("https://example.com/p.png"),
			Tags:        schema.TagList("Go", "gin"),
			GithubURL:   str("https://github.com/example/p"),
			Featured:    boolPtr(true),
		})
		require.NoError(t, err)
		assert.Equal(t, 4, created.ID)
		assert.Equal(t, "Portfolio API", created.Title)
		assert.Equal(t, []string{"Go", "gin"}, created.Tags)
		assert.Nil(t, created.DemoURL)
		assert.True(t, created.Featured)
		assert.False(t, created.CreatedAt.IsZero())

		projects, err := s.GetProjects()
		require.NoError(t, err)
		require.Len(t, projects, 4)
		assert.Equal(t, created.ID, projects[0].ID)
		assert.Equal(t, created.Tags, projects[0].Tags)
		assert.Equal(t, *created.ImageURL, *projects[0].ImageURL)
	})

	t.Run("tags are normalized on create", func(t *testing.T) {
		s := newStore(t)

		solo, err := s.CreateProject(schema.InsertProject{Title: "A", Description: "D", Tags: schema.TagScalar("solo")})
		require.NoError(t, err)
		assert.Equal(t, []string{"solo"}, solo.Tags)

		list, err := s.CreateProject(schema.InsertProject{Title: "B", Description: "D", Tags: schema.TagList("a", "b")})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, list.Tags)

		none, err := s.CreateProject(schema.InsertProject{Title: "C", Description: "D"})
		require.NoError(t, err)
		assert.Nil(t, none.Tags)
		assert.False(t, none.Featured)
	})

	t.Run("empty tag list is kept as an empty list", func(t *testing.T) {
		s := newStore(t)

		created, err := s.CreateProject(schema.InsertProject{Title: "T", Description: "D", Tags: schema.TagList()})
		require.NoError(t, err)
		require.NotNil(t, created.Tags)
		assert.Empty(t, created.Tags)

		projects, err := s.GetProjects()
		require.NoError(t, err)
		require.Equal(t, created.ID, projects[0].ID)
		assert.NotNil(t, projects[0].Tags)

		updated, err := s.UpdateProject(created.ID, schema.ProjectPatch{})
		require.NoError(t, err)
		assert.NotNil(t, updated.Tags)
		assert.Empty(t, updated.Tags)

		projects, err = s.GetProjects()
		require.NoError(t, err)
		assert.NotNil(t, projects[0].Tags)

		body, err := json.Marshal(projects[0])
		require.NoError(t, err)
		assert.Contains(t, string(body), `"tags":[]`)
	})

	t.Run("created records match later reads", func(t *testing.T) {
		s := newStore(t)

		contact, err := s.CreateContact(schema.InsertContact{Name: "Ada", Email: "a@example.com", ProjectType: "web", Message: "hi"})
		require.NoError(t, err)
		contacts, err := s.GetContacts()
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.True(t, contact.CreatedAt.Equal(contacts[0].CreatedAt), "%v != %v", contact.CreatedAt, contacts[0].CreatedAt)

		project, err := s.CreateProject(schema.InsertProject{Title: "T", Description: "D"})
		require.NoError(t, err)
		projects, err := s.GetProjects()
		require.NoError(t, err)
		assert.True(t, project.CreatedAt.Equal(projects[0].CreatedAt), "%v != %v", project.CreatedAt, projects[0].CreatedAt)

		section, err := s.UpdatePortfolioContent("skills", schema.InsertPortfolioContent{Title: str("Go")})
		require.NoError(t, err)
		stored, err := s.GetPortfolioContent("skills")
		require.NoError(t, err)
		assert.True(t, section.UpdatedAt.Equal(stored.UpdatedAt), "%v != %v", section.UpdatedAt, stored.UpdatedAt)
	})

	t.Run("new unfeatured project lists first", func(t *testing.T) {
		s := newStore(t)

		created, err := s.CreateProject(schema.InsertProject{Title: "T", Description: "D", Featured: boolPtr(false)})
		require.NoError(t, err)

		projects, err := s.GetProjects()
		require.NoError(t, err)
		require.Len(t, projects, 4)
		assert.Equal(t, created.ID, projects[0].ID)
		assert.False(t, projects[0].Featured)
		for i := 1; i < len(projects); i++ {
			assert.False(t, projects[i-1].CreatedAt.Before(projects[i].CreatedAt))
		}
	})

	t.Run("project ids are never reused", func(t *testing.T) {
		s := newStore(t)

		a, err := s.CreateProject(schema.InsertProject{Title: "A", Description: "D"})
		require.NoError(t, err)
		require.NoError(t, s.DeleteProject(a.ID))

		b, err := s.CreateProject(schema.InsertProject{Title: "B", Description: "D"})
		require.NoError(t, err)
		assert.Greater(t, b.ID, a.ID)
	})

	t.Run("empty patch leaves the project unchanged", func(t *testing.T) {
		s := newStore(t)
		projects, err := s.GetProjects()
		require.NoError(t, err)
		before := projects[len(projects)-1]

		after, err := s.UpdateProject(before.ID, schema.ProjectPatch{})
		require.NoError(t, err)
		assert.Equal(t, before.ID, after.ID)
		assert.Equal(t, before.Title, after.Title)
		assert.Equal(t, before.Description, after.Description)
		assert.Equal(t, before.Tags, after.Tags)
		assert.Equal(t, before.GithubURL, after.GithubURL)
		assert.Equal(t, before.DemoURL, after.DemoURL)
		assert.Equal(t, before.Featured, after.Featured)
		assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
	})

	t.Run("patch merges supplied fields", func(t *testing.T) {
		s := newStore(t)

		updated, err := s.UpdateProject(1, schema.ProjectPatch{
			Featured: schema.Some(false),
			DemoURL:  schema.Some[*string](nil),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.ID)
		assert.False(t, updated.Featured)
		assert.Nil(t, updated.DemoURL)
		assert.Equal(t, "Smart Study Planner", updated.Title)
		assert.Equal(t, []string{"React", "OpenAI", "Python"}, updated.Tags)

		updated, err = s.UpdateProject(1, schema.ProjectPatch{Tags: schema.TagScalar("Go")})
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, updated.Tags)
		assert.False(t, updated.Featured)

		updated, err = s.UpdateProject(1, schema.ProjectPatch{Title: schema.Some("Study Planner"), Tags: schema.TagList("Go", "Vue")})
		require.NoError(t, err)
		assert.Equal(t, "Study Planner", updated.Title)
		assert.Equal(t, []string{"Go", "Vue"}, updated.Tags)
	})

	t.Run("update and delete of missing projects fail with not found", func(t *testing.T) {
		s := newStore(t)

		_, err := s.UpdateProject(404, schema.ProjectPatch{Featured: schema.Some(true)})
		var nf *NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, 404, nf.ID)

		err = s.DeleteProject(404)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, s.DeleteProject(2))
		err = s.DeleteProject(2)
		assert.ErrorIs(t, err, ErrNotFound)

		projects, err := s.GetProjects()
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{1, 3}, projectIDs(projects))
	})
}
