package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dartsliga/league-system/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type resultFixture struct {
	store       *fakeStore
	service     ResultService
	broadcaster *recordingBroadcaster
}

func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()
	store := newFakeStore()
	store.matches[10] = &models.Match{
		ID:         10,
		SeasonID:   1,
		HomeTeamID: 1,
		AwayTeamID: 2,
		Status:     models.MatchStatusScheduled,
	}

	broadcaster := &recordingBroadcaster{}
	service := NewResultService(
		fakeTxManager{},
		&fakeMatchRepo{store: store},
		&fakeGameRepo{store: store},
		&fakeGameEventRepo{store: store},
		&fakePlayerStatsRepo{store: store},
		broadcaster,
		discardLogger(),
	)
	return &resultFixture{store: store, service: service, broadcaster: broadcaster}
}

func adminCaller() Caller {
	return Caller{UserID: 1, Role: models.RoleAdmin}
}

func captainCaller(teamID int) Caller {
	return Caller{Role: models.RoleCaptain, TeamID: &teamID}
}

func (f *resultFixture) statsFor(t *testing.T, playerID int) *models.PlayerStats {
	t.Helper()
	for _, st := range f.store.stats {
		if st.PlayerID == playerID && st.SeasonID == 1 {
			return st
		}
	}
	t.Fatalf("no stats row for player %d", playerID)
	return nil
}

// detailedInput builds a three-game card: two singles and one 501 double.
func detailedInput() DetailedResultInput {
	three, one := 3, 1
	zero := 0
	return DetailedResultInput{
		Games: map[string]DetailedGameInput{
			"1": {
				Type:         "single",
				Format:       "501 DO",
				Participants: GameParticipantsInput{Home: []int{101}, Away: []int{201}},
				Result:       DetailedGameResultInput{Winner: "home", HomeLegs: &three, AwayLegs: &one},
				Events: map[string]map[string]int{
					"101": {"s95": 2, "highest_checkout": 120},
				},
			},
			"2": {
				Type:         "single",
				Format:       "501 DO",
				Participants: GameParticipantsInput{Home: []int{102}, Away: []int{202}},
				Result:       DetailedGameResultInput{Winner: "away", HomeLegs: &zero, AwayLegs: &three},
			},
			"3": {
				Type:         "double_501",
				Format:       "501 DO",
				Participants: GameParticipantsInput{Home: []int{101, 102}, Away: []int{201, 202}},
				Result:       DetailedGameResultInput{Winner: "home"},
			},
		},
	}
}

func TestSubmitQuickResult(t *testing.T) {
	f := newResultFixture(t)

	match, err := f.service.SubmitQuickResult(context.Background(), 10, QuickResultInput{
		HomeWins: 12, AwayWins: 7, HomeLegs: 30, AwayLegs: 22,
	}, adminCaller())
	if err != nil {
		t.Fatalf("SubmitQuickResult: %v", err)
	}

	if match.Status != models.MatchStatusCompleted {
		t.Errorf("status = %s, want completed", match.Status)
	}
	if match.Result == nil || !match.Result.IsQuickResult {
		t.Fatal("expected a quick result payload")
	}
	if match.Result.HomePoints != 3 || match.Result.AwayPoints != 0 {
		t.Errorf("points = %d:%d, want 3:0", match.Result.HomePoints, match.Result.AwayPoints)
	}
	if match.EndTime == nil || match.StartTime == nil {
		t.Error("expected start and end time to be set")
	}
	if len(f.broadcaster.published) != 1 || f.broadcaster.published[0] != 10 {
		t.Errorf("published = %v, want [10]", f.broadcaster.published)
	}

	// Quick mode must leave player statistics untouched.
	if len(f.store.stats) != 0 {
		t.Errorf("quick result created %d stats rows, want none", len(f.store.stats))
	}
}

func TestSubmitQuickResultValidation(t *testing.T) {
	f := newResultFixture(t)

	cases := []struct {
		name  string
		input QuickResultInput
	}{
		{"negative wins", QuickResultInput{HomeWins: -1, AwayWins: 3, HomeLegs: 0, AwayLegs: 9}},
		{"no wins at all", QuickResultInput{}},
		{"too many game wins", QuickResultInput{HomeWins: 15, AwayWins: 6, HomeLegs: 40, AwayLegs: 18}},
		{"fewer legs than wins", QuickResultInput{HomeWins: 10, AwayWins: 9, HomeLegs: 9, AwayLegs: 20}},
		{"legs beyond bound", QuickResultInput{HomeWins: 12, AwayWins: 7, HomeLegs: 61, AwayLegs: 20}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.SubmitQuickResult(context.Background(), 10, tc.input, adminCaller())
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("err = %v, want ErrValidationFailed", err)
			}
		})
	}
}

func TestSubmitResultAuthorization(t *testing.T) {
	f := newResultFixture(t)
	input := QuickResultInput{HomeWins: 12, AwayWins: 7, HomeLegs: 30, AwayLegs: 22}

	if _, err := f.service.SubmitQuickResult(context.Background(), 10, input, Caller{UserID: 5, Role: models.RolePlayer}); !errors.Is(err, ErrResultEntryForbidden) {
		t.Errorf("player submission: err = %v, want ErrResultEntryForbidden", err)
	}
	if _, err := f.service.SubmitQuickResult(context.Background(), 10, input, captainCaller(3)); !errors.Is(err, ErrResultEntryForbidden) {
		t.Errorf("unrelated captain: err = %v, want ErrResultEntryForbidden", err)
	}
	if _, err := f.service.SubmitQuickResult(context.Background(), 10, input, captainCaller(2)); err != nil {
		t.Errorf("away captain: unexpected err %v", err)
	}

	// Authorization is checked before payload validation.
	if _, err := f.service.SubmitDetailedResult(context.Background(), 10, DetailedResultInput{}, captainCaller(3)); !errors.Is(err, ErrResultEntryForbidden) {
		t.Errorf("detailed, unrelated captain: err = %v, want ErrResultEntryForbidden", err)
	}
}

func TestSubmitDetailedResult(t *testing.T) {
	f := newResultFixture(t)

	match, err := f.service.SubmitDetailedResult(context.Background(), 10, detailedInput(), adminCaller())
	if err != nil {
		t.Fatalf("SubmitDetailedResult: %v", err)
	}

	if match.Result == nil {
		t.Fatal("expected a result payload")
	}
	if match.Result.IsQuickResult {
		t.Error("detailed submission must not be flagged as quick")
	}
	if match.Result.HomeWins != 2 || match.Result.AwayWins != 1 {
		t.Errorf("wins = %d:%d, want 2:1", match.Result.HomeWins, match.Result.AwayWins)
	}
	if match.Result.HomeLegs != 3 || match.Result.AwayLegs != 4 {
		t.Errorf("legs = %d:%d, want 3:4", match.Result.HomeLegs, match.Result.AwayLegs)
	}
	// One leg down means the away side takes the penalty win.
	if match.Result.HomePoints != 1 || match.Result.AwayPoints != 2 {
		t.Errorf("points = %d:%d, want 1:2", match.Result.HomePoints, match.Result.AwayPoints)
	}

	if len(f.store.games) != 3 {
		t.Errorf("stored %d games, want 3", len(f.store.games))
	}
	// Two s95 rows plus one highest-checkout row.
	if len(f.store.events) != 3 {
		t.Errorf("stored %d events, want 3", len(f.store.events))
	}

	p101 := f.statsFor(t, 101)
	if p101.GamesPlayed != 2 || p101.GamesWon != 2 {
		t.Errorf("player 101 games = %d/%d, want 2/2", p101.GamesPlayed, p101.GamesWon)
	}
	if p101.SinglesPlayed != 1 || p101.SinglesWon != 1 {
		t.Errorf("player 101 singles = %d/%d, want 1/1", p101.SinglesPlayed, p101.SinglesWon)
	}
	if p101.LegsWon != 3 || p101.LegsLost != 1 {
		t.Errorf("player 101 legs = %d/%d, want 3/1", p101.LegsWon, p101.LegsLost)
	}
	if p101.Score95 != 2 {
		t.Errorf("player 101 s95 = %d, want 2", p101.Score95)
	}
	if p101.HighestCheckout != 120 {
		t.Errorf("player 101 highest checkout = %d, want 120", p101.HighestCheckout)
	}
	if p101.BPI <= 0 {
		t.Errorf("player 101 BPI = %f, want > 0", p101.BPI)
	}

	p202 := f.statsFor(t, 202)
	if p202.GamesPlayed != 2 || p202.GamesWon != 1 {
		t.Errorf("player 202 games = %d/%d, want 2/1", p202.GamesPlayed, p202.GamesWon)
	}

	// Legs credited to players mirror the singles leg scores.
	totalLegsWon := 0
	for _, st := range f.store.stats {
		totalLegsWon += st.LegsWon
	}
	if totalLegsWon != 7 {
		t.Errorf("total legs won across players = %d, want 7", totalLegsWon)
	}
}

func TestSubmitDetailedResultIdempotent(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	if _, err := f.service.SubmitDetailedResult(ctx, 10, detailedInput(), adminCaller()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	first := *f.statsFor(t, 101)

	if _, err := f.service.SubmitDetailedResult(ctx, 10, detailedInput(), adminCaller()); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	second := *f.statsFor(t, 101)

	if first.StatLine() != second.StatLine() {
		t.Errorf("re-submitting the same payload changed the stats:\nfirst:  %+v\nsecond: %+v",
			first.StatLine(), second.StatLine())
	}
	if len(f.store.games) != 3 {
		t.Errorf("stored %d games after re-submit, want 3", len(f.store.games))
	}
}

func TestSubmitDetailedResultCorrection(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	if _, err := f.service.SubmitDetailedResult(ctx, 10, detailedInput(), adminCaller()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if got := f.statsFor(t, 101).Score95; got != 2 {
		t.Fatalf("s95 after first submit = %d, want 2", got)
	}

	// Correction removes both s95 events; the highest checkout stays because
	// the aggregate keeps a running maximum.
	corrected := detailedInput()
	game := corrected.Games["1"]
	game.Events = nil
	corrected.Games["1"] = game

	if _, err := f.service.SubmitDetailedResult(ctx, 10, corrected, adminCaller()); err != nil {
		t.Fatalf("corrected submit: %v", err)
	}

	p101 := f.statsFor(t, 101)
	if p101.Score95 != 0 {
		t.Errorf("s95 after correction = %d, want 0", p101.Score95)
	}
	if p101.GamesPlayed != 2 {
		t.Errorf("games played after correction = %d, want 2", p101.GamesPlayed)
	}
	if p101.HighestCheckout != 120 {
		t.Errorf("highest checkout after correction = %d, want 120", p101.HighestCheckout)
	}
}

func TestSubmitDetailedResultReplacesQuick(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	if _, err := f.service.SubmitQuickResult(ctx, 10, QuickResultInput{
		HomeWins: 12, AwayWins: 7, HomeLegs: 30, AwayLegs: 22,
	}, adminCaller()); err != nil {
		t.Fatalf("quick submit: %v", err)
	}

	match, err := f.service.SubmitDetailedResult(ctx, 10, detailedInput(), adminCaller())
	if err != nil {
		t.Fatalf("detailed submit: %v", err)
	}
	if match.Result.IsQuickResult {
		t.Error("detailed submission did not clear the quick flag")
	}
	if match.Result.HomeWins != 2 || match.Result.AwayWins != 1 {
		t.Errorf("wins = %d:%d, want the detailed 2:1", match.Result.HomeWins, match.Result.AwayWins)
	}
}

func TestSubmitDetailedResultValidation(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()
	three, one := 3, 1

	mutate := func(fn func(input *DetailedResultInput)) DetailedResultInput {
		input := detailedInput()
		fn(&input)
		return input
	}

	cases := []struct {
		name  string
		input DetailedResultInput
	}{
		{"no games", DetailedResultInput{}},
		{"unknown game type", mutate(func(in *DetailedResultInput) {
			g := in.Games["1"]
			g.Type = "quadruple"
			in.Games["1"] = g
		})},
		{"wrong participant count", mutate(func(in *DetailedResultInput) {
			g := in.Games["3"]
			g.Participants.Home = []int{101}
			in.Games["3"] = g
		})},
		{"events on a double", mutate(func(in *DetailedResultInput) {
			g := in.Games["3"]
			g.Events = map[string]map[string]int{"101": {"s95": 1}}
			in.Games["3"] = g
		})},
		{"event by a non-participant", mutate(func(in *DetailedResultInput) {
			g := in.Games["1"]
			g.Events = map[string]map[string]int{"999": {"s95": 1}}
			in.Games["1"] = g
		})},
		{"missing singles legs", mutate(func(in *DetailedResultInput) {
			g := in.Games["1"]
			g.Result = DetailedGameResultInput{Winner: "home"}
			in.Games["1"] = g
		})},
		{"bad position key", mutate(func(in *DetailedResultInput) {
			in.Games["0"] = DetailedGameInput{
				Type:         "single",
				Participants: GameParticipantsInput{Home: []int{103}, Away: []int{203}},
				Result:       DetailedGameResultInput{Winner: "home", HomeLegs: &three, AwayLegs: &one},
			}
		})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.SubmitDetailedResult(ctx, 10, tc.input, adminCaller())
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("err = %v, want ErrValidationFailed", err)
			}
		})
	}

	// Nothing may be persisted by rejected submissions.
	if len(f.store.games) != 0 || len(f.store.stats) != 0 {
		t.Errorf("rejected submissions persisted data: %d games, %d stats rows",
			len(f.store.games), len(f.store.stats))
	}
}

func TestSubmitResultUnknownMatch(t *testing.T) {
	f := newResultFixture(t)
	if _, err := f.service.SubmitQuickResult(context.Background(), 404, QuickResultInput{
		HomeWins: 12, AwayWins: 7, HomeLegs: 30, AwayLegs: 22,
	}, adminCaller()); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("err = %v, want ErrMatchNotFound", err)
	}
}
