package main

import (
	"context"
	"time"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/profile"
)

// addProfile creates a teacher or admin account directly against the
// repository; admin accounts can only be bootstrapped here, the API never
// creates them.
func (cli *commandLine) addProfile(name, email, pwd string, role profile.Role) error {
	ctx := context.Background()

	p := profile.Profile{
		Name:  core.CleanString(name),
		Email: core.CleanString(email, true /* lower */),
		Role:  role,
	}
	if err := cli.profileRepo.CheckEmailUniqueness(ctx, p.Email); err != nil {
		return err
	}
	if err := p.SetPassword(pwd); err != nil {
		return err
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := cli.profileRepo.CreateProfile(ctx, p)
	return err
}
