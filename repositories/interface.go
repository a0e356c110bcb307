package repositories

import (
	"portfolio-server/entities"
	"portfolio-server/schema"
)

// Storage is the content store behind the portfolio API. Lookups return a nil
// record and a nil error when nothing matches. Returned records are copies;
// mutating them does not change stored state.
type Storage interface {
	GetUser(id int) (*entities.User, error)
	GetUserByUsername(username string) (*entities.User, error)
	CreateUser(user schema.InsertUser) (*entities.User, error)

	CreateContact(contact schema.InsertContact) (*entities.Contact, error)
	GetContacts() ([]entities.Contact, error)

	GetPortfolioContent(section string) (*entities.PortfolioContent, error)
	UpdatePortfolioContent(section string, content schema.InsertPortfolioContent) (*entities.PortfolioContent, error)

	GetProjects() ([]entities.Project, error)
	CreateProject(project schema.InsertProject) (*entities.Project, error)
	UpdateProject(id int, patch schema.ProjectPatch) (*entities.Project, error)
	DeleteProject(id int) error
}
