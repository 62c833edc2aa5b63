package contacts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hugh/go-smscms/internal/database/models"
)

var ErrInvalidContact = errors.New("invalid contact")

// IngestResult is the outcome of a CSV upload. Created holds the contacts
// that were validated and stored; Skipped lists the data lines that were not.
type IngestResult struct {
	Created []*models.Contact
	Skipped []SkippedRow
}

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Ingest parses CSV text with two columns (name, phone) and stores every
// valid row. Bad rows are skipped; the batch never fails as a whole.
func (s *Service) Ingest(ctx context.Context, raw string) *IngestResult {
	result := &IngestResult{Created: []*models.Contact{}}

	lines := strings.Split(raw, "\n")
	delimiter := detectDelimiter(lines)

	for i, line := range lines {
		contact, reason := parseRow(i, line, delimiter)
		if reason == "" {
			if err := s.store.Save(ctx, contact); err != nil {
				s.logger.Warn("contact row not stored", "line", i+1, "error", err)
				reason = SkipPersistFailed
			}
		}

		if reason != "" {
			if !reason.silent() {
				s.logger.Debug("contact row skipped", "line", i+1, "reason", reason)
				result.Skipped = append(result.Skipped, SkippedRow{Line: i + 1, Reason: reason, Raw: line})
			}
			continue
		}

		result.Created = append(result.Created, contact)
	}

	s.logger.Info("contacts ingested",
		"delimiter", delimiter,
		"created", len(result.Created),
		"skipped", len(result.Skipped),
	)

	return result
}

// Create validates and stores a single contact.
func (s *Service) Create(ctx context.Context, name, phone string) (*models.Contact, error) {
	contact := models.NewContact(strings.TrimSpace(name), strings.TrimSpace(phone))
	if err := contact.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContact, err)
	}

	if err := s.store.Save(ctx, contact); err != nil {
		return nil, fmt.Errorf("saving contact: %w", err)
	}
	return contact, nil
}

func (s *Service) List(ctx context.Context) ([]models.Contact, error) {
	return s.store.ListAll(ctx)
}
