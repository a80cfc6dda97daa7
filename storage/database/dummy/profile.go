package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/edutrack/edutrack/core/profile"
)

type profileRepository struct {
	db *profileTable
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *DB) profile.Repository {
	return &profileRepository{db: db.profile}
}

func (repo *profileRepository) query() []profile.Profile {
	profiles := make([]profile.Profile, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		profiles = append(profiles, *p)
	}
	return profiles
}

func (repo *profileRepository) CheckEmailUniqueness(_ context.Context, email string, excluded ...profile.Profile) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, p := range repo.query() {
		if p.Email == email && !isExcluded(p, excluded) {
			return profile.ErrEmailExists
		}
	}
	return nil
}

func (repo *profileRepository) CreateProfile(_ context.Context, p profile.Profile) (profile.Profile, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	p.ID = uuid.New().String()
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *profileRepository) GetProfileByID(_ context.Context, id string) (profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (repo *profileRepository) GetProfileByEmail(_ context.Context, email string) (profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, p := range repo.query() {
		if p.Email == email {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (repo *profileRepository) FilterProfiles(_ context.Context, filter profile.QueryFilter) ([]profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	profiles := make([]profile.Profile, 0)
	for _, p := range repo.query() {
		if filter.Role != "" && p.Role != filter.Role {
			continue
		}
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

func isExcluded(p profile.Profile, excluded []profile.Profile) bool {
	for _, e := range excluded {
		if e.ID == p.ID {
			return true
		}
	}
	return false
}
