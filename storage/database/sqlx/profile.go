package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core/profile"
)

type profileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *sqlx.DB) profile.Repository {
	return &profileRepository{db: db}
}

func (repo *profileRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...profile.Profile) error {
	q := `SELECT EXISTS (SELECT 1 FROM profiles WHERE email = $1)`
	args := []interface{}{email}
	if len(excluded) > 0 {
		ids := make([]string, 0, len(excluded))
		for _, p := range excluded {
			ids = append(ids, p.ID)
		}
		var err error
		q, args, err = sqlx.In(`SELECT EXISTS (SELECT 1 FROM profiles WHERE email = ? AND id NOT IN (?))`, email, ids)
		if err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
		q = repo.db.Rebind(q)
	}

	var exists bool
	if err := repo.db.GetContext(ctx, &exists, q, args...); err != nil {
		return errors.Wrap(err, "checking profile uniqueness")
	}
	if exists {
		return profile.ErrEmailExists
	}
	return nil
}

func (repo *profileRepository) CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	p.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO profiles (id, name, email, role, password_hash, created_at, updated_at)
		VALUES (:id, :name, :email, :role, :password_hash, :created_at, :updated_at)`, p)
	if err != nil {
		return profile.Profile{}, errors.Wrap(err, "inserting profile")
	}
	return p, nil
}

func (repo *profileRepository) GetProfileByID(ctx context.Context, id string) (profile.Profile, error) {
	var p profile.Profile
	err := repo.db.GetContext(ctx, &p, `
		SELECT id, name, email, role, password_hash, created_at, updated_at
		FROM profiles WHERE id = $1`, id)
	if err != nil {
		return profile.Profile{}, trapNoRowsErr(err, profile.ErrNotFound, "getting profile by id")
	}
	return p, nil
}

func (repo *profileRepository) GetProfileByEmail(ctx context.Context, email string) (profile.Profile, error) {
	var p profile.Profile
	err := repo.db.GetContext(ctx, &p, `
		SELECT id, name, email, role, password_hash, created_at, updated_at
		FROM profiles WHERE email = $1`, email)
	if err != nil {
		return profile.Profile{}, trapNoRowsErr(err, profile.ErrNotFound, "getting profile by email")
	}
	return p, nil
}

func (repo *profileRepository) FilterProfiles(ctx context.Context, filter profile.QueryFilter) ([]profile.Profile, error) {
	q := `SELECT id, name, email, role, password_hash, created_at, updated_at FROM profiles`
	var clauses []string
	var args []interface{}
	if filter.Role != "" {
		clauses = append(clauses, "role = $1")
		args = append(args, filter.Role)
	}
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY name"

	profiles := make([]profile.Profile, 0)
	if err := repo.db.SelectContext(ctx, &profiles, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering profiles")
	}
	return profiles, nil
}

// trapNoRowsErr maps psql "no rows" to the domain's not-found error.
func trapNoRowsErr(err, notFound error, msg string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}
