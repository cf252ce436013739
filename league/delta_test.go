package league

import "testing"

func sampleGames() []GameRecord {
	return []GameRecord{
		{
			Type: GameSingle, Winner: SideHome, HomeLegs: 2, AwayLegs: 1,
			HomePlayers: []int{10}, AwayPlayers: []int{20},
			Events: []EventRecord{
				{PlayerID: 10, Kind: EventScore95},
				{PlayerID: 10, Kind: EventScore95},
				{PlayerID: 10, Kind: EventCheckout3},
				{PlayerID: 10, Kind: EventHighestCheckout, Value: 120},
				{PlayerID: 20, Kind: EventScore133},
			},
		},
		{
			Type: GameDouble501, Winner: SideAway, HomeLegs: 1, AwayLegs: 2,
			HomePlayers: []int{10, 11}, AwayPlayers: []int{20, 21},
		},
	}
}

func TestComputeDeltasSingles(t *testing.T) {
	deltas := ComputeDeltas(sampleGames())

	d10 := deltas[10]
	if d10 == nil {
		t.Fatal("no delta for player 10")
	}
	if d10.GamesPlayed != 2 || d10.GamesWon != 1 {
		t.Errorf("player 10 games: played=%d won=%d, want 2/1", d10.GamesPlayed, d10.GamesWon)
	}
	if d10.SinglesPlayed != 1 || d10.SinglesWon != 1 {
		t.Errorf("player 10 singles: played=%d won=%d, want 1/1", d10.SinglesPlayed, d10.SinglesWon)
	}
	if d10.LegsWon != 2 || d10.LegsLost != 1 {
		t.Errorf("player 10 legs: won=%d lost=%d, want 2/1", d10.LegsWon, d10.LegsLost)
	}
	if d10.Score95 != 2 || d10.Checkout3 != 1 || d10.HighestCheckout != 120 {
		t.Errorf("player 10 events: s95=%d c3=%d high=%d", d10.Score95, d10.Checkout3, d10.HighestCheckout)
	}

	d20 := deltas[20]
	if d20.SinglesWon != 0 || d20.LegsWon != 1 || d20.LegsLost != 2 {
		t.Errorf("player 20 singles: won=%d legsWon=%d legsLost=%d", d20.SinglesWon, d20.LegsWon, d20.LegsLost)
	}
	if d20.Score133 != 1 {
		t.Errorf("player 20 s133=%d, want 1", d20.Score133)
	}
}

func TestComputeDeltasDoublesLeaveSinglesCountersAlone(t *testing.T) {
	deltas := ComputeDeltas(sampleGames())
	d11 := deltas[11]
	if d11 == nil {
		t.Fatal("no delta for player 11")
	}
	if d11.GamesPlayed != 1 || d11.GamesWon != 0 {
		t.Errorf("player 11 games: played=%d won=%d, want 1/0", d11.GamesPlayed, d11.GamesWon)
	}
	if d11.SinglesPlayed != 0 || d11.LegsWon != 0 || d11.LegsLost != 0 {
		t.Errorf("doubles game leaked into singles counters: %+v", d11)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	deltas := ComputeDeltas(sampleGames())
	d := *deltas[10]

	existing := StatLine{}
	first := Reconcile(existing, StatLine{}, d)
	second := Reconcile(first, d, d)

	if first != second {
		t.Errorf("re-applying identical submission changed aggregate:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestReconcileReEntryCorrection(t *testing.T) {
	// Initial entry credits two S95 events, the correction zero.
	old := StatLine{SinglesPlayed: 1, SinglesWon: 1, GamesPlayed: 1, GamesWon: 1, LegsWon: 2, LegsLost: 1, Score95: 2}
	new := StatLine{SinglesPlayed: 1, SinglesWon: 1, GamesPlayed: 1, GamesWon: 1, LegsWon: 2, LegsLost: 1}

	// Aggregate already carries other matches on top of the old contribution.
	existing := StatLine{SinglesPlayed: 5, SinglesWon: 3, GamesPlayed: 7, GamesWon: 4, LegsWon: 11, LegsLost: 8, Score95: 3}

	got := Reconcile(existing, old, new)
	if got.Score95 != 1 {
		t.Errorf("s95 after correction = %d, want existing 3 - old 2 + new 0 = 1", got.Score95)
	}
	if got.SinglesPlayed != 5 || got.GamesPlayed != 7 {
		t.Errorf("unchanged contribution moved the totals: %+v", got)
	}
}

func TestReconcileHighestCheckoutIsMaxMerged(t *testing.T) {
	existing := StatLine{HighestCheckout: 100}

	raised := Reconcile(existing, StatLine{HighestCheckout: 100}, StatLine{HighestCheckout: 130})
	if raised.HighestCheckout != 130 {
		t.Errorf("raised max = %d, want 130", raised.HighestCheckout)
	}

	// Lowering the same match's checkout cannot reduce the stored maximum.
	lowered := Reconcile(existing, StatLine{HighestCheckout: 100}, StatLine{HighestCheckout: 60})
	if lowered.HighestCheckout != 100 {
		t.Errorf("lowered max = %d, want 100 kept", lowered.HighestCheckout)
	}
}

func TestParseEventKindRejectsUnknown(t *testing.T) {
	if _, err := ParseEventKind("s95"); err != nil {
		t.Errorf("s95 rejected: %v", err)
	}
	if _, err := ParseEventKind("s180"); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestParseGameType(t *testing.T) {
	tests := []struct {
		in      string
		perSide int
		ok      bool
	}{
		{"single", 1, true},
		{"double_501", 2, true},
		{"double_cricket", 2, true},
		{"triple_301", 3, true},
		{"tiebreak_701", 3, true},
		{"quadro", 0, false},
	}
	for _, tt := range tests {
		gt, err := ParseGameType(tt.in)
		if tt.ok != (err == nil) {
			t.Errorf("ParseGameType(%q) err=%v", tt.in, err)
			continue
		}
		if tt.ok && gt.PlayersPerSide() != tt.perSide {
			t.Errorf("%q players per side = %d, want %d", tt.in, gt.PlayersPerSide(), tt.perSide)
		}
	}
}
