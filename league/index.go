package league

// Weighting of the two performance indices. These are league policy, tuned by
// the board between seasons, not structural constants.
const (
	// BPI weights singles win rate plus checkout craft.
	bpiWinRateWeight   = 50.0
	bpiScore95Weight   = 1.0
	bpiScore133Weight  = 2.0
	bpiScore170Weight  = 4.0
	bpiCheckout3Weight = 5.0
	bpiCheckout4Weight = 3.0
	bpiCheckout5Weight = 2.0
	bpiCheckout6Weight = 1.0

	// The HSL-Index leans on the high-score counters instead.
	hslWinRateWeight   = 30.0
	hslScore95Weight   = 3.0
	hslScore133Weight  = 5.0
	hslScore170Weight  = 8.0
	hslCheckout3Weight = 2.0
	hslCheckout4Weight = 1.5
	hslCheckout5Weight = 1.0
	hslCheckout6Weight = 0.5
)

// BPI computes the primary performance index from a player's season counters.
// A player with no singles played scores 0; otherwise the result is a finite,
// non-negative combination of singles win rate and per-game achievement
// density.
func BPI(s StatLine) float64 {
	if s.SinglesPlayed <= 0 {
		return 0
	}
	winRate := float64(s.SinglesWon) / float64(s.SinglesPlayed)
	achievements := bpiScore95Weight*float64(s.Score95) +
		bpiScore133Weight*float64(s.Score133) +
		bpiScore170Weight*float64(s.Score170) +
		bpiCheckout3Weight*float64(s.Checkout3) +
		bpiCheckout4Weight*float64(s.Checkout4) +
		bpiCheckout5Weight*float64(s.Checkout5) +
		bpiCheckout6Weight*float64(s.Checkout6)
	return bpiWinRateWeight*winRate + achievements/float64(s.SinglesPlayed)
}

// HSLIndex computes the secondary index with the alternate weighting.
func HSLIndex(s StatLine) float64 {
	if s.SinglesPlayed <= 0 {
		return 0
	}
	winRate := float64(s.SinglesWon) / float64(s.SinglesPlayed)
	achievements := hslScore95Weight*float64(s.Score95) +
		hslScore133Weight*float64(s.Score133) +
		hslScore170Weight*float64(s.Score170) +
		hslCheckout3Weight*float64(s.Checkout3) +
		hslCheckout4Weight*float64(s.Checkout4) +
		hslCheckout5Weight*float64(s.Checkout5) +
		hslCheckout6Weight*float64(s.Checkout6)
	return hslWinRateWeight*winRate + achievements/float64(s.SinglesPlayed)
}
