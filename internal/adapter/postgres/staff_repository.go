package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
	"github.com/jackc/pgx/v5"
)

type staffRepository struct {
	db DB
}

func NewStaffRepository(db DB) interfaces.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) FindByID(ctx context.Context, id int) (*domain.Staff, error) {
	query := `
		SELECT id, name, email, role, status, created_at
		FROM staff
		WHERE id = $1
	`

	var staff domain.Staff
	err := r.db.QueryRow(ctx, query, id).Scan(
		&staff.ID, &staff.Name, &staff.Email, &staff.Role, &staff.Status, &staff.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to find staff: %w", err)
	}

	return &staff, nil
}

func (r *staffRepository) ListAll(ctx context.Context) ([]domain.Staff, error) {
	query := `
		SELECT id, name, email, role, status, created_at
		FROM staff
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var members []domain.Staff
	for rows.Next() {
		var staff domain.Staff
		if err := rows.Scan(
			&staff.ID, &staff.Name, &staff.Email, &staff.Role, &staff.Status, &staff.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		members = append(members, staff)
	}

	return members, nil
}
