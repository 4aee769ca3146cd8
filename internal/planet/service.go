package planet

import (
	"context"
	"log/slog"

	"planets-api/internal/auth"
)

// Service owns the planet lifecycle rules on top of the persistence gateway.
// Provenance is decided here: every mutating write stamps both createdBy and
// updatedBy with the current actor, so after a replace the record carries the
// replacing principal on both fields.
type Service struct {
	gateway Gateway
	logger  *slog.Logger
}

func NewService(gateway Gateway, logger *slog.Logger) *Service {
	logger.Debug("Initializing planet service")

	return &Service{
		gateway: gateway,
		logger:  logger,
	}
}

func (s *Service) List(ctx context.Context) ([]Planet, error) {
	return s.gateway.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*Planet, error) {
	return s.gateway.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input Input, principal auth.Principal) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "create", "actor", principal.Username)
	logger.Debug("Creating planet", "name", input.Name)

	planet, err := s.gateway.Create(ctx, input, principal.Username)
	if err != nil {
		return nil, err
	}

	logger.Info("Planet created", "planet_id", planet.ID)
	return planet, nil
}

func (s *Service) Replace(ctx context.Context, id int, input Input, principal auth.Principal) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "replace", "planet_id", id, "actor", principal.Username)
	logger.Debug("Replacing planet")

	planet, err := s.gateway.Replace(ctx, id, input, principal.Username)
	if err != nil {
		return nil, err
	}

	logger.Info("Planet replaced")
	return planet, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	logger := s.logger.With("component", "planet_service", "operation", "delete", "planet_id", id)
	logger.Debug("Deleting planet")

	if err := s.gateway.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Planet deleted")
	return nil
}

// AttachPhoto links an already-stored photo file to the planet. The file
// write happens before this call; if the link fails the stored file is left
// orphaned in the content store, a known limitation carried over from the
// original design.
func (s *Service) AttachPhoto(ctx context.Context, id int, filename string) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "attach_photo", "planet_id", id)
	logger.Debug("Attaching photo", "filename", filename)

	planet, err := s.gateway.SetPhoto(ctx, id, filename)
	if err != nil {
		return nil, err
	}

	logger.Info("Photo attached", "filename", filename)
	return planet, nil
}
