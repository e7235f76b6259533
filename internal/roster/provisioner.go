// Package roster resolves participant identifiers into validated
// participant profiles.
package roster

import (
	"fmt"

	"github.com/kwatanabe/classnet/internal/models"
)

// ProfileSource supplies the profile behind a participant identifier.
// Deployments back this with their student-information system; tests and
// the CLI use the synthetic source.
type ProfileSource interface {
	Profile(id string) (models.Participant, error)
}

// Provisioner resolves a roster of identifiers against a ProfileSource,
// rejecting malformed rosters and profiles that violate field invariants.
type Provisioner struct {
	source ProfileSource
}

// NewProvisioner creates a provisioner backed by the given source.
func NewProvisioner(source ProfileSource) *Provisioner {
	return &Provisioner{source: source}
}

// Provision resolves ids into one validated profile each, preserving the
// input order. Empty rosters wrap ErrInsufficientParticipants; repeated
// identifiers wrap ErrDuplicateParticipant; profiles violating field
// invariants wrap ErrInvalidProfile.
func (p *Provisioner) Provision(ids []string) ([]models.Participant, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: empty roster", models.ErrInsufficientParticipants)
	}

	seen := make(map[string]struct{}, len(ids))
	out := make([]models.Participant, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicateParticipant, id)
		}
		seen[id] = struct{}{}

		profile, err := p.source.Profile(id)
		if err != nil {
			return nil, fmt.Errorf("resolve participant %s: %w", id, err)
		}
		if profile.ID == "" {
			profile.ID = id
		}
		if err := profile.Validate(); err != nil {
			return nil, err
		}
		out = append(out, profile)
	}
	return out, nil
}
