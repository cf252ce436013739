package league

import (
	"math"
	"testing"
)

func TestIndicesZeroWithoutSingles(t *testing.T) {
	s := StatLine{GamesPlayed: 4, GamesWon: 2, Checkout3: 3, Score170: 1}
	if got := BPI(s); got != 0 {
		t.Errorf("BPI with no singles = %f, want 0", got)
	}
	if got := HSLIndex(s); got != 0 {
		t.Errorf("HSL-Index with no singles = %f, want 0", got)
	}
}

func TestIndicesFiniteAndNonNegative(t *testing.T) {
	lines := []StatLine{
		{},
		{SinglesPlayed: 1},
		{SinglesPlayed: 1, SinglesWon: 1},
		{SinglesPlayed: 18, SinglesWon: 17, Score95: 40, Score133: 12, Score170: 3,
			Checkout3: 9, Checkout4: 14, Checkout5: 11, Checkout6: 7, HighestCheckout: 170},
	}
	for i, s := range lines {
		for name, fn := range map[string]func(StatLine) float64{"BPI": BPI, "HSL": HSLIndex} {
			got := fn(s)
			if math.IsNaN(got) || math.IsInf(got, 0) || got < 0 {
				t.Errorf("line %d: %s = %f", i, name, got)
			}
		}
	}
}

func TestBPIRewardsWinsAndAchievements(t *testing.T) {
	base := StatLine{SinglesPlayed: 10, SinglesWon: 5}
	moreWins := StatLine{SinglesPlayed: 10, SinglesWon: 8}
	moreCheckouts := base
	moreCheckouts.Checkout3 = 4

	if !(BPI(moreWins) > BPI(base)) {
		t.Error("higher win rate did not raise BPI")
	}
	if !(BPI(moreCheckouts) > BPI(base)) {
		t.Error("more checkouts did not raise BPI")
	}
}

func TestIndicesWeightDifferently(t *testing.T) {
	highScorer := StatLine{SinglesPlayed: 10, SinglesWon: 5, Score170: 6}
	finisher := StatLine{SinglesPlayed: 10, SinglesWon: 5, Checkout3: 6}

	// BPI favors the quick finisher, the HSL-Index the high scorer.
	if !(BPI(finisher) > BPI(highScorer)) {
		t.Error("BPI should weight 3-dart checkouts above 170 scores")
	}
	if !(HSLIndex(highScorer) > HSLIndex(finisher)) {
		t.Error("HSL-Index should weight 170 scores above 3-dart checkouts")
	}
}
