package services

import (
	"context"
	"sort"
	"time"

	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/repositories"
)

// fakeStore is an in-memory backend shared by the service tests. It implements
// the repository interfaces the transactional flows depend on; the fake tx
// manager runs the function directly so the flows run without a database.
type fakeStore struct {
	seasons map[int]*models.Season
	teams   map[int]*models.Team
	matches map[int]*models.Match
	games   map[int]*models.Game
	events  map[int]*models.GameEvent
	stats   map[int]*models.PlayerStats // keyed by stats id

	nextGameID  int
	nextEventID int
	nextStatsID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seasons:     make(map[int]*models.Season),
		teams:       make(map[int]*models.Team),
		matches:     make(map[int]*models.Match),
		games:       make(map[int]*models.Game),
		events:      make(map[int]*models.GameEvent),
		stats:       make(map[int]*models.PlayerStats),
		nextGameID:  1,
		nextEventID: 1,
		nextStatsID: 1,
	}
}

type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

// --- MatchRepository ---

type fakeMatchRepo struct{ store *fakeStore }

func (r *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	r.store.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	match, ok := r.store.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	clone := *match
	return &clone, nil
}

func (r *fakeMatchRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *fakeMatchRepo) ListBySeason(ctx context.Context, seasonID int, status *models.MatchStatus) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	for _, m := range r.store.matches {
		if m.SeasonID != seasonID {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (r *fakeMatchRepo) ListCompletedBySeason(ctx context.Context, seasonID int) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	for _, m := range r.store.matches {
		if m.SeasonID == seasonID && m.Status == models.MatchStatusCompleted && m.Result != nil && m.EndTime != nil {
			matches = append(matches, m)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].EndTime.Before(*matches[j].EndTime) })
	return matches, nil
}

func (r *fakeMatchRepo) UpdateSchedule(ctx context.Context, match *models.Match) error {
	if _, ok := r.store.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	r.store.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, id int, result *models.MatchResult, status models.MatchStatus, startTime, endTime *time.Time) error {
	match, ok := r.store.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Result = result
	match.Status = status
	match.StartTime = startTime
	match.EndTime = endTime
	return nil
}

func (r *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.store.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.store.matches, id)
	return nil
}

// --- GameRepository ---

type fakeGameRepo struct{ store *fakeStore }

func (r *fakeGameRepo) Create(ctx context.Context, exec repositories.SQLExecutor, game *models.Game) error {
	game.ID = r.store.nextGameID
	r.store.nextGameID++
	clone := *game
	r.store.games[game.ID] = &clone
	return nil
}

func (r *fakeGameRepo) ListByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]*models.Game, error) {
	games := make([]*models.Game, 0)
	for _, g := range r.store.games {
		if g.MatchID == matchID {
			clone := *g
			games = append(games, &clone)
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].Position < games[j].Position })
	return games, nil
}

func (r *fakeGameRepo) DeleteByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int) error {
	for id, g := range r.store.games {
		if g.MatchID == matchID {
			delete(r.store.games, id)
		}
	}
	return nil
}

// --- GameEventRepository ---

type fakeGameEventRepo struct{ store *fakeStore }

func (r *fakeGameEventRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, events []*models.GameEvent) error {
	for _, ev := range events {
		ev.ID = r.store.nextEventID
		r.store.nextEventID++
		clone := *ev
		r.store.events[ev.ID] = &clone
	}
	return nil
}

func (r *fakeGameEventRepo) ListByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]*models.GameEvent, error) {
	events := make([]*models.GameEvent, 0)
	for _, ev := range r.store.events {
		game, ok := r.store.games[ev.GameID]
		if ok && game.MatchID == matchID {
			clone := *ev
			events = append(events, &clone)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (r *fakeGameEventRepo) DeleteByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int) error {
	for id, ev := range r.store.events {
		game, ok := r.store.games[ev.GameID]
		if ok && game.MatchID == matchID {
			delete(r.store.events, id)
		}
	}
	return nil
}

// --- PlayerStatsRepository ---

type fakePlayerStatsRepo struct{ store *fakeStore }

func (r *fakePlayerStatsRepo) Create(ctx context.Context, exec repositories.SQLExecutor, stats *models.PlayerStats) error {
	stats.ID = r.store.nextStatsID
	r.store.nextStatsID++
	clone := *stats
	r.store.stats[stats.ID] = &clone
	return nil
}

func (r *fakePlayerStatsRepo) GetByPlayerAndSeason(ctx context.Context, exec repositories.SQLExecutor, playerID, seasonID int) (*models.PlayerStats, error) {
	for _, st := range r.store.stats {
		if st.PlayerID == playerID && st.SeasonID == seasonID {
			clone := *st
			return &clone, nil
		}
	}
	return nil, repositories.ErrPlayerStatsNotFound
}

func (r *fakePlayerStatsRepo) GetOrCreate(ctx context.Context, exec repositories.SQLExecutor, playerID, seasonID int) (*models.PlayerStats, error) {
	stats, err := r.GetByPlayerAndSeason(ctx, exec, playerID, seasonID)
	if err == nil {
		return stats, nil
	}
	fresh := &models.PlayerStats{PlayerID: playerID, SeasonID: seasonID, UpdatedAt: time.Now()}
	if createErr := r.Create(ctx, exec, fresh); createErr != nil {
		return nil, createErr
	}
	return fresh, nil
}

func (r *fakePlayerStatsRepo) Update(ctx context.Context, exec repositories.SQLExecutor, stats *models.PlayerStats) error {
	if _, ok := r.store.stats[stats.ID]; !ok {
		return repositories.ErrPlayerStatsNotFound
	}
	clone := *stats
	r.store.stats[stats.ID] = &clone
	return nil
}

func (r *fakePlayerStatsRepo) ListBySeason(ctx context.Context, seasonID int) ([]*models.PlayerStats, error) {
	list := make([]*models.PlayerStats, 0)
	for _, st := range r.store.stats {
		if st.SeasonID == seasonID {
			clone := *st
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].BPI > list[j].BPI })
	return list, nil
}

func (r *fakePlayerStatsRepo) ListByTeam(ctx context.Context, teamID, seasonID int) ([]*models.PlayerStats, error) {
	return r.ListBySeason(ctx, seasonID)
}

// --- SeasonRepository ---

type fakeSeasonRepo struct{ store *fakeStore }

func (r *fakeSeasonRepo) Create(ctx context.Context, season *models.Season) error {
	r.store.seasons[season.ID] = season
	return nil
}

func (r *fakeSeasonRepo) GetByID(ctx context.Context, id int) (*models.Season, error) {
	season, ok := r.store.seasons[id]
	if !ok {
		return nil, repositories.ErrSeasonNotFound
	}
	return season, nil
}

func (r *fakeSeasonRepo) GetActive(ctx context.Context) (*models.Season, error) {
	for _, s := range r.store.seasons {
		if s.Active {
			return s, nil
		}
	}
	return nil, repositories.ErrNoActiveSeason
}

func (r *fakeSeasonRepo) List(ctx context.Context) ([]*models.Season, error) {
	list := make([]*models.Season, 0, len(r.store.seasons))
	for _, s := range r.store.seasons {
		list = append(list, s)
	}
	return list, nil
}

func (r *fakeSeasonRepo) Update(ctx context.Context, season *models.Season) error {
	if _, ok := r.store.seasons[season.ID]; !ok {
		return repositories.ErrSeasonNotFound
	}
	r.store.seasons[season.ID] = season
	return nil
}

func (r *fakeSeasonRepo) Activate(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	if _, ok := r.store.seasons[id]; !ok {
		return repositories.ErrSeasonNotFound
	}
	for _, s := range r.store.seasons {
		s.Active = s.ID == id
	}
	return nil
}

func (r *fakeSeasonRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.store.seasons[id]; !ok {
		return repositories.ErrSeasonNotFound
	}
	delete(r.store.seasons, id)
	return nil
}

// --- TeamRepository ---

type fakeTeamRepo struct{ store *fakeStore }

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	r.store.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := r.store.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (r *fakeTeamRepo) ListBySeason(ctx context.Context, seasonID int) ([]*models.Team, error) {
	teams := make([]*models.Team, 0)
	for _, t := range r.store.teams {
		if t.SeasonID == seasonID {
			teams = append(teams, t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (r *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error {
	if _, ok := r.store.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.store.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) UpdateCaptain(ctx context.Context, teamID int, captainID *int) error {
	team, ok := r.store.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.CaptainID = captainID
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	team, ok := r.store.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	return nil
}

func (r *fakeTeamRepo) UpdatePinHash(ctx context.Context, teamID int, pinHash string) error {
	team, ok := r.store.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.PinHash = &pinHash
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.store.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.store.teams, id)
	return nil
}

// --- broadcaster ---

type recordingBroadcaster struct {
	published []int // match ids in publish order
}

func (b *recordingBroadcaster) PublishResult(seasonID int, match *models.Match) {
	b.published = append(b.published, match.ID)
}
