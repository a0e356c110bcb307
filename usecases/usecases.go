package usecases

import (
	"portfolio-server/cache"
	"portfolio-server/entities"
	"portfolio-server/repositories"
	"portfolio-server/schema"
	"portfolio-server/ws"

	"github.com/rs/zerolog/log"
)

// Publisher receives change notifications for live pages.
type Publisher interface {
	Publish(event ws.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(ws.Event) {}

// PortfolioUseCase validates raw client input and runs it against the store.
type PortfolioUseCase struct {
	Store       repositories.Storage
	Submissions *cache.SubmissionCache
	Events      Publisher
}

func NewPortfolioUseCase(store repositories.Storage, submissions *cache.SubmissionCache, events Publisher) *PortfolioUseCase {
	if submissions == nil {
		submissions = cache.NewSubmissionCache(0)
	}
	if events == nil {
		events = noopPublisher{}
	}
	return &PortfolioUseCase{
		Store:       store,
		Submissions: submissions,
		Events:      events,
	}
}

// ============= Portfolio sections =============

// GetSection returns the named section, or nil when it has never been saved.
func (uc *PortfolioUseCase) GetSection(section string) (*entities.PortfolioContent, error) {
	if section == "" {
		return nil, schema.RequiredField(schema.EntityPortfolioContent, "section")
	}
	return uc.Store.GetPortfolioContent(section)
}

// UpdateSection replaces the named section with the raw body.
func (uc *PortfolioUseCase) UpdateSection(section string, raw map[string]any) (*entities.PortfolioContent, error) {
	in, err := schema.ParseInsertPortfolioContent(raw)
	if err != nil {
		return nil, err
	}
	content, err := uc.Store.UpdatePortfolioContent(section, in)
	if err != nil {
		return nil, err
	}

	log.Info().Str("section", section).Int64("id", content.ID).Msg("portfolio section updated")
	uc.Events.Publish(ws.Event{Type: ws.EventContentUpdated, Section: section})
	return content, nil
}

// ============= Projects =============

// ListProjects returns every project, newest first.
func (uc *PortfolioUseCase) ListProjects() ([]entities.Project, error) {
	return uc.Store.GetProjects()
}

// CreateProject validates and stores a new project.
func (uc *PortfolioUseCase) CreateProject(raw map[string]any) (*entities.Project, error) {
	in, err := schema.ParseInsertProject(raw)
	if err != nil {
		return nil, err
	}
	project, err := uc.Store.CreateProject(in)
	if err != nil {
		return nil, err
	}

	log.Info().Int("id", project.ID).Str("title", project.Title).Msg("project created")
	uc.Events.Publish(ws.Event{Type: ws.EventProjectsChanged, ProjectID: project.ID, Action: "created"})
	return project, nil
}

// UpdateProject merges the raw partial body over project id.
func (uc *PortfolioUseCase) UpdateProject(id int, raw map[string]any) (*entities.Project, error) {
	patch, err := schema.ParseProjectPatch(raw)
	if err != nil {
		return nil, err
	}
	project, err := uc.Store.UpdateProject(id, patch)
	if err != nil {
		return nil, err
	}

	log.Info().Int("id", id).Msg("project updated")
	uc.Events.Publish(ws.Event{Type: ws.EventProjectsChanged, ProjectID: id, Action: "updated"})
	return project, nil
}

// DeleteProject removes project id.
func (uc *PortfolioUseCase) DeleteProject(id int) error {
	if err := uc.Store.DeleteProject(id); err != nil {
		return err
	}

	log.Info().Int("id", id).Msg("project deleted")
	uc.Events.Publish(ws.Event{Type: ws.EventProjectsChanged, ProjectID: id, Action: "deleted"})
	return nil
}
