package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront-backend/internal/notification"
)

type Service interface {
	Submit(ctx context.Context, c *Contact) (*Contact, error)
	List(ctx context.Context) ([]Contact, error)
	ListMessages(ctx context.Context, contactID *int64) ([]Message, error)
	CreateMessage(ctx context.Context, m *Message) (*Message, error)
	MarkMessageRead(ctx context.Context, id int64) (*Message, error)
	GetWithMessages(ctx context.Context, contactID int64) (*WithMessages, error)
}

type service struct {
	repo          Repository
	notifications notification.Repository
}

func NewService(repo Repository, notifications notification.Repository) Service {
	return &service{repo: repo, notifications: notifications}
}

// Submit stores the contact-form submission and raises exactly one admin
// notification about it.
func (s *service) Submit(ctx context.Context, c *Contact) (*Contact, error) {
	stored, err := s.repo.Create(ctx, c)
	if err != nil {
		log.Error().Err(err).Str("email", c.Email).Msg("service: failed to create contact")
		return nil, fmt.Errorf("service: failed to create contact: %w", err)
	}

	_, err = s.notifications.Create(ctx, &notification.Notification{
		Title:   "New Contact Form Submission",
		Message: fmt.Sprintf("%s submitted a contact form about %q", stored.Name, stored.Subject),
		Type:    "info",
	})
	if err != nil {
		log.Error().Err(err).Int64("contact_id", stored.ID).Msg("service: failed to create contact notification")
		return nil, fmt.Errorf("service: failed to create contact notification: %w", err)
	}

	log.Info().Int64("contact_id", stored.ID).Msg("service: contact form submitted")

	return stored, nil
}

func (s *service) List(ctx context.Context) ([]Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list contacts")
		return nil, fmt.Errorf("service: failed to list contacts: %w", err)
	}

	return contacts, nil
}

func (s *service) ListMessages(ctx context.Context, contactID *int64) ([]Message, error) {
	messages, err := s.repo.ListMessages(ctx, contactID)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list messages")
		return nil, fmt.Errorf("service: failed to list messages: %w", err)
	}

	return messages, nil
}

func (s *service) CreateMessage(ctx context.Context, m *Message) (*Message, error) {
	stored, err := s.repo.CreateMessage(ctx, m)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create message")
		return nil, fmt.Errorf("service: failed to create message: %w", err)
	}

	return stored, nil
}

func (s *service) MarkMessageRead(ctx context.Context, id int64) (*Message, error) {
	stored, err := s.repo.MarkMessageRead(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		log.Error().Err(err).Int64("message_id", id).Msg("service: failed to mark message as read")
		return nil, fmt.Errorf("service: failed to mark message as read: %w", err)
	}

	return stored, nil
}

func (s *service) GetWithMessages(ctx context.Context, contactID int64) (*WithMessages, error) {
	result, err := s.repo.GetWithMessages(ctx, contactID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("contact_id", contactID).Msg("service: failed to fetch contact with messages")
		return nil, fmt.Errorf("service: failed to fetch contact with messages: %w", err)
	}

	return result, nil
}
