//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"adequa/internal/access"
	"adequa/internal/audit"
	"adequa/internal/audit/store/postgres"
	id "adequa/pkg/domain"
	"adequa/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = postgres.New(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "audit_records"))
}

func record(actor id.UserID, ts time.Time) audit.Record {
	return audit.Record{
		ID:           uuid.New(),
		ActorID:      actor,
		Action:       audit.ActionAnswersSaved,
		Category:     audit.ActionAnswersSaved.Category(),
		ResourceType: audit.ResourceAnswerSet,
		ResourceID:   uuid.NewString(),
		Details:      json.RawMessage(`{"score":80}`),
		IPAddress:    "198.51.100.4",
		UserAgent:    "Mozilla/5.0",
		Success:      true,
		AccessLevel:  access.LevelOwner,
		RequestID:    "req-1",
		Timestamp:    ts,
	}
}

func (s *PostgresStoreSuite) TestAppendAndQueryRange() {
	ctx := context.Background()
	actor := id.UserID(uuid.New())
	base := time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC)

	for i := range 3 {
		s.Require().NoError(s.store.Append(ctx, record(actor, base.Add(time.Duration(i)*time.Hour))))
	}

	got, err := s.store.QueryRange(ctx, base, base.Add(2*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(got, 2, "end is exclusive")
	s.Equal(actor, got[0].ActorID)
	s.True(got[0].Timestamp.Before(got[1].Timestamp))
	s.JSONEq(`{"score":80}`, string(got[0].Details))
	s.Nil(got[0].PreviousState)
	s.Equal(access.LevelOwner, got[0].AccessLevel)
}

func (s *PostgresStoreSuite) TestSystemActorRoundTrips() {
	ctx := context.Background()
	ts := time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Append(ctx, record(id.UserID{}, ts)))

	got, err := s.store.QueryRange(ctx, ts, ts.Add(time.Second))
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.True(got[0].IsSystem())
}
