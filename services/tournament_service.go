package services

import (
	"context"
	"errors"

	"github.com/saoodchoudhary/rbmesports/backend"
	"github.com/saoodchoudhary/rbmesports/models"
)

const (
	defaultTournamentPageSize = 20
	maxTournamentPageSize     = 100
)

type TournamentCatalog interface {
	GetTournament(ctx context.Context, token, id string) (*models.Tournament, error)
	ListTournaments(ctx context.Context, token string, filter models.TournamentFilter) ([]models.Tournament, error)
}

type TournamentService struct {
	api TournamentCatalog
}

func NewTournamentService(api TournamentCatalog) *TournamentService {
	return &TournamentService{api: api}
}

func (s *TournamentService) GetTournament(ctx context.Context, actor Actor, id string) (*models.Tournament, error) {
	t, err := s.api.GetTournament(ctx, actor.Token, id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TournamentService) ListTournaments(ctx context.Context, actor Actor, filter models.TournamentFilter) ([]models.Tournament, error) {
	if filter.TournamentType != nil && !filter.TournamentType.Valid() {
		return nil, NewValidationError(models.FieldErrors{"tournamentType": "Tournament type must be solo, duo or squad"})
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultTournamentPageSize
	}
	if filter.Limit > maxTournamentPageSize {
		filter.Limit = maxTournamentPageSize
	}
	return s.api.ListTournaments(ctx, actor.Token, filter)
}
