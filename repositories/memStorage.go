package repositories

import (
	"sync"
	"time"

	"portfolio-server/entities"
	"portfolio-server/schema"
)

// memStorage keeps every collection in process memory. One lock covers all
// collections so id allocation and insert are atomic together.
type memStorage struct {
	mu  sync.RWMutex
	now func() time.Time

	users            map[int]entities.User
	contacts         map[int]entities.Contact
	portfolioContent map[string]entities.PortfolioContent
	projects         map[int]entities.Project

	nextUserID    int
	nextContactID int
	nextProjectID int
	lastContentID int64
}

// NewMemStorage returns the in-memory store. With seed set it starts with the
// hero and about sections and three featured projects.
func NewMemStorage(seed bool) Storage {
	return newMemStorage(seed, time.Now)
}

func newMemStorage(seed bool, now func() time.Time) *memStorage {
	s := &memStorage{
		now:              now,
		users:            make(map[int]entities.User),
		contacts:         make(map[int]entities.Contact),
		portfolioContent: make(map[string]entities.PortfolioContent),
		projects:         make(map[int]entities.Project),
		nextUserID:       1,
		nextContactID:    1,
		nextProjectID:    1,
	}
	if seed {
		s.seed()
	}
	return s
}

func (s *memStorage) seed() {
	now := s.now()
	for _, c := range seedSections(now) {
		s.portfolioContent[c.Section] = c
		if c.ID > s.lastContentID {
			s.lastContentID = c.ID
		}
	}
	for _, p := range seedProjects(now) {
		s.projects[p.ID] = p
		if p.ID >= s.nextProjectID {
			s.nextProjectID = p.ID + 1
		}
	}
}

func (s *memStorage) GetUser(id int) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *memStorage) GetUserByUsername(username string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(username), nil
}

// findUser scans in id order so the first created match wins. Callers hold mu.
func (s *memStorage) findUser(username string) *entities.User {
	for id := 1; id < s.nextUserID; id++ {
		user, ok := s.users[id]
		if ok && user.Username == username {
			return &user
		}
	}
	return nil
}

func (s *memStorage) CreateUser(in schema.InsertUser) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findUser(in.Username) != nil {
		return nil, ErrUsernameTaken
	}
	user := entities.User{
		ID:       s.nextUserID,
		Username: in.Username,
		Password: in.Password,
	}
	s.nextUserID++
	s.users[user.ID] = user
	return &user, nil
}

func (s *memStorage) CreateContact(in schema.InsertContact) (*entities.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact := newContact(s.nextContactID, in, s.now())
	s.nextContactID++
	s.contacts[contact.ID] = contact
	return &contact, nil
}

func (s *memStorage) GetContacts() ([]entities.Contact, error) {
	s.mu.RLock()
	contacts := make([]entities.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		contacts = append(contacts, c)
	}
	s.mu.RUnlock()

	sortContactsNewestFirst(contacts)
	return contacts, nil
}

func (s *memStorage) GetPortfolioContent(section string) (*entities.PortfolioContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.portfolioContent[section]
	if !ok {
		return nil, nil
	}
	return clonePortfolioContent(content), nil
}

func (s *memStorage) UpdatePortfolioContent(section string, in schema.InsertPortfolioContent) (*entities.PortfolioContent, error) {
	if section == "" {
		return nil, schema.RequiredField(schema.EntityPortfolioContent, "section")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()

	var id int64
	if existing, ok := s.portfolioContent[section]; ok {
		id = existing.ID
	} else {
		id = s.mintContentID(now)
	}

	content := newPortfolioContent(id, section, in, now)
	s.portfolioContent[section] = content
	return clonePortfolioContent(content), nil
}

// mintContentID derives a section id from the clock, bumped past any id
// already handed out. Callers hold mu.
func (s *memStorage) mintContentID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastContentID {
		id = s.lastContentID + 1
	}
	s.lastContentID = id
	return id
}

func (s *memStorage) GetProjects() ([]entities.Project, error) {
	s.mu.RLock()
	projects := make([]entities.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p.Clone())
	}
	s.mu.RUnlock()

	sortProjectsNewestFirst(projects)
	return projects, nil
}

func (s *memStorage) CreateProject(in schema.InsertProject) (*entities.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project := newProject(s.nextProjectID, in, s.now())
	s.nextProjectID++
	s.projects[project.ID] = project

	out := project.Clone()
	return &out, nil
}

func (s *memStorage) UpdateProject(id int, patch schema.ProjectPatch) (*entities.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.projects[id]
	if !ok {
		return nil, &NotFoundError{Kind: "project", ID: id}
	}

	updated := applyProjectPatch(existing, patch)
	s.projects[id] = updated

	out := updated.Clone()
	return &out, nil
}

func (s *memStorage) DeleteProject(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return &NotFoundError{Kind: "project", ID: id}
	}
	delete(s.projects, id)
	return nil
}

func clonePortfolioContent(c entities.PortfolioContent) *entities.PortfolioContent {
	c.Title = nullIfEmpty(c.Title)
	c.Description = nullIfEmpty(c.Description)
	c.Content = nullIfEmpty(c.Content)
	c.ImageURL = nullIfEmpty(c.ImageURL)
	c.Metadata = nullIfEmpty(c.Metadata)
	return &c
}
