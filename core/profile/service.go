package profile

import (
	"context"
	"errors"
	"time"

	"github.com/edutrack/edutrack/core"
)

var (
	// errors
	ErrNotFound    = errors.New("profile not found")
	ErrEmailExists = errors.New("a profile with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excluded ...Profile) error
		CreateProfile(ctx context.Context, p Profile) (Profile, error)
		GetProfileByID(ctx context.Context, id string) (Profile, error)
		GetProfileByEmail(ctx context.Context, email string) (Profile, error)
		// FilterProfiles applies AND operation on available QueryFilter fields,
		// ordered by name.
		FilterProfiles(ctx context.Context, filter QueryFilter) ([]Profile, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckEmailUniqueness(ctx context.Context, email string, excluded ...Profile) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, excluded...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Create registers a new account with the given role.
func (svc *Service) Create(ctx context.Context, np NewProfile, role Role) (Profile, error) {
	now := time.Now().UTC()
	p := Profile{
		Name:      np.Name,
		Email:     np.Email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.SetPassword(np.Password); err != nil {
		return Profile{}, err
	}
	return svc.repo.CreateProfile(ctx, p)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	return svc.repo.GetProfileByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Profile, error) {
	return svc.repo.GetProfileByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Profile, error) {
	return svc.repo.FilterProfiles(ctx, filter)
}
