package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/dartsliga/league-system/league"
	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/repositories"
)

// Hard bounds on a submitted result. A full card is 9 singles, 3 501
// doubles, 3 cricket doubles, one triple and one tiebreak.
const (
	maxGamesPerMatch = 19
	maxLegsPerSide   = 60
)

// ResultBroadcaster pushes a completed result to the live feed. The live.Hub
// satisfies it; tests plug in a recorder.
type ResultBroadcaster interface {
	PublishResult(seasonID int, match *models.Match)
}

type QuickResultInput struct {
	HomeWins int `json:"home_wins"`
	AwayWins int `json:"away_wins"`
	HomeLegs int `json:"home_legs"`
	AwayLegs int `json:"away_legs"`
}

type DetailedResultInput struct {
	// Games maps the 1-based card position onto the game entry. JSON object
	// keys are strings; positions are parsed and validated server-side.
	Games map[string]DetailedGameInput `json:"games"`
}

type DetailedGameInput struct {
	Type         string                  `json:"type"`
	Format       string                  `json:"format"`
	Participants GameParticipantsInput   `json:"participants"`
	Result       DetailedGameResultInput `json:"result"`
	// Events maps player id -> event kind -> occurrence count. Only valid on
	// singles. The highest_checkout kind carries a checkout value in place
	// of a count.
	Events map[string]map[string]int `json:"events,omitempty"`
}

type GameParticipantsInput struct {
	Home []int `json:"home"`
	Away []int `json:"away"`
}

type DetailedGameResultInput struct {
	Winner   string `json:"winner"`
	HomeLegs *int   `json:"home_legs,omitempty"`
	AwayLegs *int   `json:"away_legs,omitempty"`
	Legs     *int   `json:"legs,omitempty"`
}

type ResultService interface {
	SubmitQuickResult(ctx context.Context, matchID int, input QuickResultInput, caller Caller) (*models.Match, error)
	SubmitDetailedResult(ctx context.Context, matchID int, input DetailedResultInput, caller Caller) (*models.Match, error)
}

type resultService struct {
	txManager   repositories.TxManager
	matchRepo   repositories.MatchRepository
	gameRepo    repositories.GameRepository
	eventRepo   repositories.GameEventRepository
	statsRepo   repositories.PlayerStatsRepository
	broadcaster ResultBroadcaster
	logger      *slog.Logger
}

func NewResultService(
	txManager repositories.TxManager,
	matchRepo repositories.MatchRepository,
	gameRepo repositories.GameRepository,
	eventRepo repositories.GameEventRepository,
	statsRepo repositories.PlayerStatsRepository,
	broadcaster ResultBroadcaster,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		txManager:   txManager,
		matchRepo:   matchRepo,
		gameRepo:    gameRepo,
		eventRepo:   eventRepo,
		statsRepo:   statsRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// SubmitQuickResult records an aggregate-only result. It touches the match
// row alone: per-player statistics are deliberately skipped in quick mode,
// trading completeness for entry speed at the venue.
func (s *resultService) SubmitQuickResult(ctx context.Context, matchID int, input QuickResultInput, caller Caller) (*models.Match, error) {
	match, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !canEnterResult(caller, match) {
		return nil, ErrResultEntryForbidden
	}
	if err := validateQuickResult(input); err != nil {
		return nil, err
	}

	homePoints, awayPoints := 3, 0
	switch {
	case input.HomeWins < input.AwayWins:
		homePoints, awayPoints = 0, 3
	case input.HomeWins == input.AwayWins:
		// Equal wins should not happen on a full card; fall back to a draw
		// split rather than inventing a winner.
		homePoints, awayPoints = 1, 1
	}

	result := &models.MatchResult{
		HomeWins:      input.HomeWins,
		AwayWins:      input.AwayWins,
		HomeLegs:      input.HomeLegs,
		AwayLegs:      input.AwayLegs,
		HomePoints:    homePoints,
		AwayPoints:    awayPoints,
		LegDifference: input.HomeLegs - input.AwayLegs,
		IsQuickResult: true,
	}

	now := time.Now()
	startTime := match.StartTime
	if startTime == nil {
		startTime = &now
	}

	if err := s.matchRepo.UpdateResult(ctx, nil, match.ID, result, models.MatchStatusCompleted, startTime, &now); err != nil {
		return nil, s.mapMatchError(err)
	}

	match.Result = result
	match.Status = models.MatchStatusCompleted
	match.StartTime = startTime
	match.EndTime = &now

	s.logger.Info("quick result recorded",
		slog.Int("match_id", match.ID),
		slog.Int("home_wins", input.HomeWins),
		slog.Int("away_wins", input.AwayWins))
	if s.broadcaster != nil {
		s.broadcaster.PublishResult(match.SeasonID, match)
	}
	return match, nil
}

// SubmitDetailedResult replaces a match's full per-game record and reconciles
// every participant's season aggregate. Games and events are deleted and
// recreated wholesale; aggregates follow the subtract-old-then-add-new
// protocol, so re-submitting the same payload is a no-op and a correcting
// re-entry shifts each counter by exactly the difference.
func (s *resultService) SubmitDetailedResult(ctx context.Context, matchID int, input DetailedResultInput, caller Caller) (*models.Match, error) {
	match, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !canEnterResult(caller, match) {
		return nil, ErrResultEntryForbidden
	}

	entries, err := validateDetailedResult(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startTime := match.StartTime
	if startTime == nil {
		startTime = &now
	}
	aggregate := aggregateFromEntries(entries)

	txErr := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		// Lock the match row: concurrent detailed submissions for the same
		// match must not interleave the delete/recreate/reconcile sequence.
		locked, err := s.matchRepo.GetByIDForUpdate(ctx, exec, match.ID)
		if err != nil {
			return s.mapMatchError(err)
		}

		oldGames, err := s.gameRepo.ListByMatch(ctx, exec, locked.ID)
		if err != nil {
			return err
		}
		oldEvents, err := s.eventRepo.ListByMatch(ctx, exec, locked.ID)
		if err != nil {
			return err
		}
		oldDeltas := league.ComputeDeltas(gameRecords(oldGames, oldEvents))

		if err := s.matchRepo.UpdateResult(ctx, exec, locked.ID, aggregate, models.MatchStatusCompleted, startTime, &now); err != nil {
			return s.mapMatchError(err)
		}
		if err := s.eventRepo.DeleteByMatch(ctx, exec, locked.ID); err != nil {
			return err
		}
		if err := s.gameRepo.DeleteByMatch(ctx, exec, locked.ID); err != nil {
			return err
		}

		newGames := make([]*models.Game, 0, len(entries))
		newEvents := make([]*models.GameEvent, 0)
		for _, entry := range entries {
			game := &models.Game{
				MatchID:      locked.ID,
				Position:     entry.Position,
				Type:         entry.Type,
				Format:       entry.Format,
				Result:       entry.Result,
				Participants: entry.Participants,
			}
			if err := s.gameRepo.Create(ctx, exec, game); err != nil {
				return err
			}
			for i := range entry.Events {
				ev := entry.Events[i]
				ev.GameID = game.ID
				newEvents = append(newEvents, &ev)
			}
			newGames = append(newGames, game)
		}
		if err := s.eventRepo.CreateBatch(ctx, exec, newEvents); err != nil {
			return err
		}

		newDeltas := league.ComputeDeltas(gameRecords(newGames, newEvents))
		return s.reconcileStats(ctx, exec, locked.SeasonID, oldDeltas, newDeltas)
	})
	if txErr != nil {
		return nil, txErr
	}

	match.Result = aggregate
	match.Status = models.MatchStatusCompleted
	match.StartTime = startTime
	match.EndTime = &now

	s.logger.Info("detailed result recorded",
		slog.Int("match_id", match.ID),
		slog.Int("games", len(entries)))
	if s.broadcaster != nil {
		s.broadcaster.PublishResult(match.SeasonID, match)
	}
	return match, nil
}

// reconcileStats applies old and new match deltas to every affected player's
// season aggregate and recomputes the derived indices.
func (s *resultService) reconcileStats(ctx context.Context, exec repositories.SQLExecutor, seasonID int, oldDeltas, newDeltas map[int]*league.StatLine) error {
	affected := make(map[int]bool, len(newDeltas))
	for pid := range oldDeltas {
		affected[pid] = true
	}
	for pid := range newDeltas {
		affected[pid] = true
	}

	playerIDs := make([]int, 0, len(affected))
	for pid := range affected {
		playerIDs = append(playerIDs, pid)
	}
	sort.Ints(playerIDs)

	for _, pid := range playerIDs {
		stats, err := s.statsRepo.GetOrCreate(ctx, exec, pid, seasonID)
		if err != nil {
			return err
		}
		var old, fresh league.StatLine
		if d := oldDeltas[pid]; d != nil {
			old = *d
		}
		if d := newDeltas[pid]; d != nil {
			fresh = *d
		}
		stats.SetStatLine(league.Reconcile(stats.StatLine(), old, fresh))
		if err := s.statsRepo.Update(ctx, exec, stats); err != nil {
			return err
		}
	}
	return nil
}

func (s *resultService) loadMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, s.mapMatchError(err)
	}
	return match, nil
}

func (s *resultService) mapMatchError(err error) error {
	if errors.Is(err, repositories.ErrMatchNotFound) {
		return ErrMatchNotFound
	}
	return err
}

func validateQuickResult(input QuickResultInput) error {
	switch {
	case input.HomeWins < 0 || input.AwayWins < 0 || input.HomeLegs < 0 || input.AwayLegs < 0:
		return fmt.Errorf("%w: wins and legs must be non-negative", ErrValidationFailed)
	case input.HomeWins+input.AwayWins == 0:
		return fmt.Errorf("%w: at least one game win must be recorded", ErrValidationFailed)
	case input.HomeWins+input.AwayWins > maxGamesPerMatch:
		return fmt.Errorf("%w: total game wins exceed the %d games of a full card", ErrValidationFailed, maxGamesPerMatch)
	case input.HomeLegs < input.HomeWins || input.AwayLegs < input.AwayWins:
		return fmt.Errorf("%w: each game win implies at least one leg", ErrValidationFailed)
	case input.HomeLegs > maxLegsPerSide || input.AwayLegs > maxLegsPerSide:
		return fmt.Errorf("%w: legs per side must not exceed %d", ErrValidationFailed, maxLegsPerSide)
	}
	return nil
}

// gameEntry is one validated game of a detailed submission, ordered by card
// position.
type gameEntry struct {
	Position     int
	Type         league.GameType
	Format       string
	Result       models.GameResult
	Participants models.GameParticipants
	Events       []models.GameEvent // GameID filled in after insert
}

func validateDetailedResult(input DetailedResultInput) ([]gameEntry, error) {
	if len(input.Games) == 0 {
		return nil, fmt.Errorf("%w: no games submitted", ErrValidationFailed)
	}
	if len(input.Games) > maxGamesPerMatch {
		return nil, fmt.Errorf("%w: more than %d games submitted", ErrValidationFailed, maxGamesPerMatch)
	}

	entries := make([]gameEntry, 0, len(input.Games))
	for key, in := range input.Games {
		position, err := strconv.Atoi(key)
		if err != nil || position < 1 {
			return nil, fmt.Errorf("%w: invalid game position %q", ErrValidationFailed, key)
		}

		gameType, err := league.ParseGameType(in.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: game %d: %v", ErrValidationFailed, position, err)
		}
		winner, err := league.ParseSide(in.Result.Winner)
		if err != nil {
			return nil, fmt.Errorf("%w: game %d: %v", ErrValidationFailed, position, err)
		}

		perSide := gameType.PlayersPerSide()
		if len(in.Participants.Home) != perSide || len(in.Participants.Away) != perSide {
			return nil, fmt.Errorf("%w: game %d: %s requires %d player(s) per side",
				ErrValidationFailed, position, gameType, perSide)
		}

		result := models.GameResult{Winner: winner}
		if gameType == league.GameSingle {
			if in.Result.HomeLegs == nil || in.Result.AwayLegs == nil {
				return nil, fmt.Errorf("%w: game %d: singles require leg scores for both sides", ErrValidationFailed, position)
			}
			result.HomeLegs = *in.Result.HomeLegs
			result.AwayLegs = *in.Result.AwayLegs
		} else {
			if in.Result.HomeLegs != nil {
				result.HomeLegs = *in.Result.HomeLegs
			}
			if in.Result.AwayLegs != nil {
				result.AwayLegs = *in.Result.AwayLegs
			}
		}
		if result.HomeLegs < 0 || result.AwayLegs < 0 {
			return nil, fmt.Errorf("%w: game %d: leg scores must be non-negative", ErrValidationFailed, position)
		}

		events, err := validateGameEvents(position, gameType, in)
		if err != nil {
			return nil, err
		}

		entries = append(entries, gameEntry{
			Position: position,
			Type:     gameType,
			Format:   in.Format,
			Result:   result,
			Participants: models.GameParticipants{
				Home: in.Participants.Home,
				Away: in.Participants.Away,
			},
			Events: events,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })
	for i := 1; i < len(entries); i++ {
		if entries[i].Position == entries[i-1].Position {
			return nil, fmt.Errorf("%w: duplicate game position %d", ErrValidationFailed, entries[i].Position)
		}
	}
	return entries, nil
}

// validateGameEvents expands the per-player count map into individual event
// rows: a count of three becomes three rows, except highest_checkout, which
// stays one row carrying the checkout value.
func validateGameEvents(position int, gameType league.GameType, in DetailedGameInput) ([]models.GameEvent, error) {
	if len(in.Events) == 0 {
		return nil, nil
	}
	if gameType != league.GameSingle {
		return nil, fmt.Errorf("%w: game %d: events are only recorded for singles", ErrValidationFailed, position)
	}

	participants := make(map[int]bool, len(in.Participants.Home)+len(in.Participants.Away))
	for _, pid := range in.Participants.Home {
		participants[pid] = true
	}
	for _, pid := range in.Participants.Away {
		participants[pid] = true
	}

	events := make([]models.GameEvent, 0)
	for playerKey, counts := range in.Events {
		playerID, err := strconv.Atoi(playerKey)
		if err != nil || playerID < 1 {
			return nil, fmt.Errorf("%w: game %d: invalid player id %q in events", ErrValidationFailed, position, playerKey)
		}
		if !participants[playerID] {
			return nil, fmt.Errorf("%w: game %d: player %d is not a participant", ErrValidationFailed, position, playerID)
		}
		for kindKey, count := range counts {
			kind, err := league.ParseEventKind(kindKey)
			if err != nil {
				return nil, fmt.Errorf("%w: game %d: %v", ErrValidationFailed, position, err)
			}
			if count < 0 {
				return nil, fmt.Errorf("%w: game %d: negative count for %s", ErrValidationFailed, position, kind)
			}
			if count == 0 {
				continue
			}
			if kind == league.EventHighestCheckout {
				events = append(events, models.GameEvent{PlayerID: playerID, Kind: kind, Value: count})
				continue
			}
			for i := 0; i < count; i++ {
				events = append(events, models.GameEvent{PlayerID: playerID, Kind: kind})
			}
		}
	}
	return events, nil
}

// aggregateFromEntries derives the match-level result payload from the game
// entries, so stored games and the aggregate can never disagree.
func aggregateFromEntries(entries []gameEntry) *models.MatchResult {
	result := &models.MatchResult{IsQuickResult: false}
	for _, entry := range entries {
		if entry.Result.Winner == league.SideHome {
			result.HomeWins++
		} else {
			result.AwayWins++
		}
		result.HomeLegs += entry.Result.HomeLegs
		result.AwayLegs += entry.Result.AwayLegs
	}
	result.LegDifference = result.HomeLegs - result.AwayLegs
	result.HomePoints, result.AwayPoints = league.MatchPoints(result.LegDifference)
	return result
}

// gameRecords converts stored games and events into the delta computation's
// storage-free shape. Old and new game sets pass through the same conversion,
// which is what makes the subtract/add protocol sound.
func gameRecords(games []*models.Game, events []*models.GameEvent) []league.GameRecord {
	eventsByGame := make(map[int][]league.EventRecord, len(games))
	for _, ev := range events {
		eventsByGame[ev.GameID] = append(eventsByGame[ev.GameID], league.EventRecord{
			PlayerID: ev.PlayerID,
			Kind:     ev.Kind,
			Value:    ev.Value,
		})
	}

	records := make([]league.GameRecord, 0, len(games))
	for _, g := range games {
		records = append(records, league.GameRecord{
			Type:        g.Type,
			Winner:      g.Result.Winner,
			HomeLegs:    g.Result.HomeLegs,
			AwayLegs:    g.Result.AwayLegs,
			HomePlayers: g.Participants.Home,
			AwayPlayers: g.Participants.Away,
			Events:      eventsByGame[g.ID],
		})
	}
	return records
}
