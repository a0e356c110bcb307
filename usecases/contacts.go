package usecases

import (
	"portfolio-server/cache"
	"portfolio-server/entities"
	"portfolio-server/schema"

	"github.com/rs/zerolog/log"
)

// SubmitContact stores a contact form submission. An identical submission
// seen inside the dedup window, including one still being stored, returns the
// first contact with duplicate set.
func (uc *PortfolioUseCase) SubmitContact(raw map[string]any) (contact *entities.Contact, duplicate bool, err error) {
	in, err := schema.ParseInsertContact(raw)
	if err != nil {
		return nil, false, err
	}

	key := cache.Fingerprint(in)
	if first, dup := uc.Submissions.Claim(key); dup {
		log.Info().Int("id", first.ID).Msg("duplicate contact submission ignored")
		return &first, true, nil
	}

	contact, err = uc.Store.CreateContact(in)
	if err != nil {
		uc.Submissions.Release(key)
		return nil, false, err
	}
	uc.Submissions.Remember(key, *contact)

	log.Info().Int("id", contact.ID).Str("project_type", contact.ProjectType).Msg("contact submission received")
	return contact, false, nil
}

// ListContacts returns every submission, newest first.
func (uc *PortfolioUseCase) ListContacts() ([]entities.Contact, error) {
	return uc.Store.GetContacts()
}
