package service

import (
	"context"
	"fmt"
	"strings"

	"car-leasing/internal/model"
	"car-leasing/internal/notify"
	"car-leasing/internal/repository"

	"github.com/rs/zerolog"
)

// contactService implements ContactService.
type contactService struct {
	contactRepo repository.ContactRepository
	notifier    notify.Notifier
	logger      zerolog.Logger
}

// NewContactService creates a new contact service. A nil notifier disables
// notifications.
func NewContactService(contactRepo repository.ContactRepository, notifier notify.Notifier, logger zerolog.Logger) ContactService {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &contactService{
		contactRepo: contactRepo,
		notifier:    notifier,
		logger:      logger.With().Str("service", "contact").Logger(),
	}
}

// Submit stores the message and then notifies the owner. A failed
// notification is logged and does not fail the submission.
func (s *contactService) Submit(ctx context.Context, req *model.ContactRequest) error {
	if req == nil {
		return model.ErrMissingContact
	}

	contact := &model.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if contact.Name == "" || contact.Email == "" || contact.Message == "" {
		return model.ErrMissingContact
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		s.logger.Error().Err(err).Msg("failed to store contact")
		return fmt.Errorf("failed to store contact: %w", err)
	}

	if err := s.notifier.ContactReceived(ctx, *contact); err != nil {
		s.logger.Warn().Err(err).Int64("contact_id", contact.ID).Msg("contact notification failed")
	}

	s.logger.Info().Int64("contact_id", contact.ID).Msg("contact stored")

	return nil
}
