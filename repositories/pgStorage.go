package repositories

import (
	"errors"
	"fmt"
	"time"

	"portfolio-server/db"
	"portfolio-server/entities"
	"portfolio-server/schema"

	"gorm.io/gorm"
)

// pgStorage implements Storage on PostgreSQL through gorm. Each operation is
// a single transaction.
type pgStorage struct {
	db db.Database
}

// NewPgStorage returns a Storage backed by database. With seed set, empty
// section and project tables receive the first-run content.
func NewPgStorage(database db.Database, seed bool) (Storage, error) {
	s := &pgStorage{db: database}
	if seed {
		if err := s.seed(); err != nil {
			return nil, fmt.Errorf("seed portfolio content: %w", err)
		}
	}
	return s, nil
}

// dbNow is the current time at the microsecond precision postgres keeps, so a
// returned record matches what a later read loads.
func dbNow() time.Time {
	return time.Now().Truncate(time.Microsecond)
}

func (r *pgStorage) seed() error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		now := dbNow()

		var sections int64
		if err := tx.Model(&entities.PortfolioContent{}).Count(&sections).Error; err != nil {
			return err
		}
		if sections == 0 {
			content := seedSections(now)
			if err := tx.Create(&content).Error; err != nil {
				return err
			}
		}

		var projects int64
		if err := tx.Model(&entities.Project{}).Count(&projects).Error; err != nil {
			return err
		}
		if projects == 0 {
			seeded := seedProjects(now)
			// ids come from the table sequence so later inserts never collide
			for i := range seeded {
				seeded[i].ID = 0
			}
			if err := tx.Create(&seeded).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *pgStorage) GetUser(id int) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (r *pgStorage) GetUserByUsername(username string) (*entities.User, error) {
	var users []entities.User
	err := r.db.GetDB().Where("username = ?", username).Order("id ASC").Limit(1).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (r *pgStorage) CreateUser(in schema.InsertUser) (*entities.User, error) {
	user := entities.User{Username: in.Username, Password: in.Password}
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&entities.User{}).Where("username = ?", in.Username).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrUsernameTaken
		}
		return tx.Create(&user).Error
	})
	if errors.Is(err, ErrUsernameTaken) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (r *pgStorage) CreateContact(in schema.InsertContact) (*entities.Contact, error) {
	contact := newContact(0, in, dbNow())
	if err := r.db.GetDB().Create(&contact).Error; err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return &contact, nil
}

func (r *pgStorage) GetContacts() ([]entities.Contact, error) {
	contacts := []entities.Contact{}
	err := r.db.GetDB().Order("created_at DESC").Order("id DESC").Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (r *pgStorage) GetPortfolioContent(section string) (*entities.PortfolioContent, error) {
	var content entities.PortfolioContent
	err := r.db.GetDB().Where("section = ?", section).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get portfolio section %q: %w", section, err)
	}
	return &content, nil
}

func (r *pgStorage) UpdatePortfolioContent(section string, in schema.InsertPortfolioContent) (*entities.PortfolioContent, error) {
	if section == "" {
		return nil, schema.RequiredField(schema.EntityPortfolioContent, "section")
	}

	var content entities.PortfolioContent
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		now := dbNow()

		var existing []entities.PortfolioContent
		if err := tx.Where("section = ?", section).Limit(1).Find(&existing).Error; err != nil {
			return err
		}

		var id int64
		if len(existing) > 0 {
			id = existing[0].ID
		} else {
			var maxID int64
			if err := tx.Model(&entities.PortfolioContent{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
				return err
			}
			id = now.UnixMilli()
			if id <= maxID {
				id = maxID + 1
			}
		}

		content = newPortfolioContent(id, section, in, now)
		return tx.Save(&content).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update portfolio section %q: %w", section, err)
	}
	return &content, nil
}

func (r *pgStorage) GetProjects() ([]entities.Project, error) {
	projects := []entities.Project{}
	err := r.db.GetDB().Order("created_at DESC").Order("id DESC").Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *pgStorage) CreateProject(in schema.InsertProject) (*entities.Project, error) {
	project := newProject(0, in, dbNow())
	if err := r.db.GetDB().Create(&project).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

func (r *pgStorage) UpdateProject(id int, patch schema.ProjectPatch) (*entities.Project, error) {
	var updated entities.Project
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		var existing entities.Project
		err := tx.Where("id = ?", id).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Kind: "project", ID: id}
		}
		if err != nil {
			return err
		}
		updated = applyProjectPatch(existing, patch)
		return tx.Save(&updated).Error
	})
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("update project %d: %w", id, err)
	}
	return &updated, nil
}

func (r *pgStorage) DeleteProject(id int) error {
	res := r.db.GetDB().Where("id = ?", id).Delete(&entities.Project{})
	if res.Error != nil {
		return fmt.Errorf("delete project %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Kind: "project", ID: id}
	}
	return nil
}
