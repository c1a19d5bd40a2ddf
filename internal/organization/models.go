// Package organization holds the organization profile that drives catalog composition.
package organization

import (
	"slices"
	"strings"
	"time"

	"adequa/internal/assessment/catalog"
	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
	pstrings "adequa/pkg/platform/strings"
)

// Size is the declared organization size.
type Size string

const (
	SizeMicro  Size = "micro"
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

func (s Size) IsValid() bool {
	switch s {
	case SizeMicro, SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

const (
	MaxCustomSectors      = 10
	MaxCustomSectorLength = 80
)

// Profile is an organization's declared structure.
type Profile struct {
	OrganizationID id.OrganizationID `json:"organization_id"`
	OwnerID        id.UserID         `json:"owner_id"`
	Sectors        []catalog.Sector  `json:"sectors"`
	CustomSectors  []string          `json:"custom_sectors"`
	Size           Size              `json:"size,omitempty"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// CatalogProfile is the composition input for this profile.
func (p *Profile) CatalogProfile() catalog.Profile {
	if p == nil {
		return catalog.Profile{}
	}
	return catalog.Profile{Sectors: p.Sectors, CustomSectors: p.CustomSectors}
}

func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Sectors = slices.Clone(p.Sectors)
	c.CustomSectors = slices.Clone(p.CustomSectors)
	return &c
}

// ProfileUpdate is the mutable part of a profile.
type ProfileUpdate struct {
	Sectors       []string `json:"sectors"`
	CustomSectors []string `json:"custom_sectors"`
	Size          string   `json:"size"`
}

// Normalize validates u and returns its canonical form: declared sectors
// deduplicated in order, custom sectors trimmed and deduplicated.
// Every violation is reported in the error details.
func (u ProfileUpdate) Normalize() ([]catalog.Sector, []string, Size, error) {
	var violations []string

	sectors := make([]catalog.Sector, 0, len(u.Sectors))
	for _, raw := range u.Sectors {
		s := catalog.Sector(strings.TrimSpace(raw))
		if err := catalog.ValidateSectors([]catalog.Sector{s}); err != nil {
			violations = append(violations, err.Error())
			continue
		}
		if !slices.Contains(sectors, s) {
			sectors = append(sectors, s)
		}
	}

	custom := pstrings.DedupeFold(u.CustomSectors)
	if len(custom) > MaxCustomSectors {
		violations = append(violations, "too many custom sectors")
	}
	for _, c := range custom {
		if len([]rune(c)) > MaxCustomSectorLength {
			violations = append(violations, "custom sector name too long: "+c)
		}
	}

	size := Size(strings.TrimSpace(u.Size))
	if size != "" && !size.IsValid() {
		violations = append(violations, "unknown organization size "+string(size))
	}

	if len(violations) > 0 {
		return nil, nil, "", dErrors.NewWithDetails(dErrors.CodeValidation, "invalid organization profile", violations)
	}
	return sectors, custom, size, nil
}
