// Package postgres persists organization profiles in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"adequa/internal/assessment/catalog"
	"adequa/internal/organization"
	id "adequa/pkg/domain"
	"adequa/pkg/platform/sentinel"
	txcontext "adequa/pkg/platform/tx"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, orgID id.OrganizationID) (*organization.Profile, error) {
	var (
		p       organization.Profile
		ownerID uuid.UUID
		sectors []string
		custom  []string
		size    string
	)
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT owner_id, sectors, custom_sectors, size, updated_at
		FROM organization_profiles
		WHERE organization_id = $1
	`, uuid.UUID(orgID)).Scan(&ownerID, pq.Array(&sectors), pq.Array(&custom), &size, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get organization profile: %w", err)
	}

	p.OrganizationID = orgID
	p.OwnerID = id.UserID(ownerID)
	p.Sectors = make([]catalog.Sector, len(sectors))
	for i, sec := range sectors {
		p.Sectors[i] = catalog.Sector(sec)
	}
	p.CustomSectors = custom
	p.Size = organization.Size(size)
	return &p, nil
}

func (s *Store) Save(ctx context.Context, p *organization.Profile) error {
	sectors := make([]string, len(p.Sectors))
	for i, sec := range p.Sectors {
		sectors[i] = string(sec)
	}
	custom := p.CustomSectors
	if custom == nil {
		custom = []string{}
	}
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO organization_profiles (organization_id, owner_id, sectors, custom_sectors, size, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (organization_id) DO UPDATE
		SET sectors = EXCLUDED.sectors,
		    custom_sectors = EXCLUDED.custom_sectors,
		    size = EXCLUDED.size,
		    updated_at = EXCLUDED.updated_at
	`, uuid.UUID(p.OrganizationID), uuid.UUID(p.OwnerID), pq.Array(sectors), pq.Array(custom),
		string(p.Size), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save organization profile: %w", err)
	}
	return nil
}
