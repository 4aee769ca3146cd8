package planet

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"planets-api/internal/shared/database"
	apperrors "planets-api/internal/shared/errors"
)

// Repository is the Postgres-backed Gateway. It runs against any Executor,
// so callers can hand it the shared connection pool or an open transaction.
type Repository struct {
	db     database.Executor
	logger *slog.Logger
}

var _ Gateway = (*Repository)(nil)

func NewRepository(db database.Executor, logger *slog.Logger) *Repository {
	logger.Debug("Initializing planet repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const planetColumns = `id, name, description, diameter, moons, created_at, updated_at, created_by, updated_by, photo_filename`

func scanPlanet(row interface{ Scan(...interface{}) error }) (*Planet, error) {
	var planet Planet
	err := row.Scan(
		&planet.ID,
		&planet.Name,
		&planet.Description,
		&planet.Diameter,
		&planet.Moons,
		&planet.CreatedAt,
		&planet.UpdatedAt,
		&planet.CreatedBy,
		&planet.UpdatedBy,
		&planet.PhotoFilename,
	)
	if err != nil {
		return nil, err
	}
	return &planet, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "find_all")
	logger.Debug("Querying all planets")

	query := `SELECT ` + planetColumns + ` FROM planets ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query planets", "error", err)
		return nil, apperrors.WrapInternal("failed to query planets", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var planets []Planet
	for rows.Next() {
		planet, err := scanPlanet(rows)
		if err != nil {
			logger.Error("Failed to scan planet row", "error", err)
			return nil, apperrors.WrapInternal("failed to scan planet", err)
		}
		planets = append(planets, *planet)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, apperrors.WrapInternal("error iterating planets", err)
	}

	logger.Debug("Planets retrieved", "count", len(planets))
	return planets, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "find_by_id", "planet_id", id)
	logger.Debug("Querying planet by id")

	query := `SELECT ` + planetColumns + ` FROM planets WHERE id = $1`

	planet, err := scanPlanet(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("planet %d not found", id)
		}
		logger.Error("Failed to query planet", "error", err)
		return nil, apperrors.WrapInternal("failed to query planet", err)
	}

	return planet, nil
}

func (r *Repository) Create(ctx context.Context, input Input, actor string) (*Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "create", "name", input.Name)
	logger.Debug("Creating planet")

	query := `
		INSERT INTO planets (name, description, diameter, moons, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + planetColumns

	planet, err := scanPlanet(r.db.QueryRowContext(ctx, query,
		input.Name, input.Description, input.Diameter, input.Moons, actor))
	if err != nil {
		logger.Error("Failed to create planet", "error", err)
		return nil, apperrors.WrapInternal("failed to create planet", err)
	}

	logger.Debug("Planet created successfully", "planet_id", planet.ID)
	return planet, nil
}

// Replace overwrites every domain field and stamps both provenance columns
// with the current actor. photo_filename is deliberately left alone.
func (r *Repository) Replace(ctx context.Context, id int, input Input, actor string) (*Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "replace", "planet_id", id)
	logger.Debug("Replacing planet")

	query := `
		UPDATE planets
		SET name = $2, description = $3, diameter = $4, moons = $5,
		    created_by = $6, updated_by = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + planetColumns

	planet, err := scanPlanet(r.db.QueryRowContext(ctx, query,
		id, input.Name, input.Description, input.Diameter, input.Moons, actor))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("planet %d not found", id)
		}
		logger.Error("Failed to replace planet", "error", err)
		return nil, apperrors.WrapInternal("failed to replace planet", err)
	}

	logger.Debug("Planet replaced successfully")
	return planet, nil
}

func (r *Repository) SetPhoto(ctx context.Context, id int, filename string) (*Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "set_photo", "planet_id", id)
	logger.Debug("Linking photo to planet", "filename", filename)

	query := `
		UPDATE planets
		SET photo_filename = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + planetColumns

	planet, err := scanPlanet(r.db.QueryRowContext(ctx, query, id, filename))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("planet %d not found", id)
		}
		logger.Error("Failed to link photo", "error", err)
		return nil, apperrors.WrapInternal("failed to link photo", err)
	}

	return planet, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	logger := r.logger.With("component", "planet_repository", "operation", "delete", "planet_id", id)
	logger.Debug("Deleting planet")

	result, err := r.db.ExecContext(ctx, `DELETE FROM planets WHERE id = $1`, id)
	if err != nil {
		logger.Error("Failed to delete planet", "error", err)
		return apperrors.WrapInternal("failed to delete planet", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.Error("Failed to read affected rows", "error", err)
		return apperrors.WrapInternal("failed to delete planet", err)
	}

	if affected == 0 {
		return apperrors.NotFoundf("planet %d not found", id)
	}

	logger.Debug("Planet deleted successfully")
	return nil
}
