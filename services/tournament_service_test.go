package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saoodchoudhary/rbmesports/backend"
	"github.com/saoodchoudhary/rbmesports/models"
)

func TestTournamentService_ListClampsPaging(t *testing.T) {
	fb := NewFakeBackend()
	var got models.TournamentFilter
	fb.ListTournamentsFunc = func(ctx context.Context, token string, filter models.TournamentFilter) ([]models.Tournament, error) {
		got = filter
		return []models.Tournament{{ID: "t1"}}, nil
	}
	svc := NewTournamentService(fb)

	list, err := svc.ListTournaments(context.Background(), testActor, models.TournamentFilter{Page: -1, Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, maxTournamentPageSize, got.Limit)

	bogus := models.TournamentType("trio")
	_, err = svc.ListTournaments(context.Background(), testActor, models.TournamentFilter{TournamentType: &bogus})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestTournamentService_GetMapsNotFound(t *testing.T) {
	fb := NewFakeBackend()
	fb.GetTournamentFunc = func(ctx context.Context, token, id string) (*models.Tournament, error) {
		return nil, &backend.APIError{StatusCode: 404, Message: "Tournament not found"}
	}
	svc := NewTournamentService(fb)

	_, err := svc.GetTournament(context.Background(), testActor, "nope")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
