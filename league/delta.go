package league

// StatLine is the additive counter set of a player's season aggregate. The
// same shape serves as a delta (what one match contributed) and as the
// persisted running total, which keeps the subtract-old-then-add-new update
// a plain field-wise sum.
type StatLine struct {
	GamesPlayed int
	GamesWon    int

	SinglesPlayed int
	SinglesWon    int

	LegsWon  int
	LegsLost int

	Score95  int
	Score133 int
	Score170 int

	Checkout3 int
	Checkout4 int
	Checkout5 int
	Checkout6 int

	// HighestCheckout is a running maximum, not an additive counter. It is
	// excluded from Reconcile's subtraction and merged with max instead.
	HighestCheckout int
}

// EventRecord is one achievement credited to a player in a singles game.
// Value is only meaningful for EventHighestCheckout.
type EventRecord struct {
	PlayerID int
	Kind     EventKind
	Value    int
}

// GameRecord is the storage-free view of one game that delta computation
// consumes. Both the previously persisted games of a match and a fresh
// submission are funneled through this shape so old and new deltas are
// guaranteed to be produced by the same rules.
type GameRecord struct {
	Type        GameType
	Winner      Side
	HomeLegs    int
	AwayLegs    int
	HomePlayers []int
	AwayPlayers []int
	Events      []EventRecord
}

// ComputeDeltas aggregates a match's games into one StatLine per
// participating player. Every participant is credited a played game and, on
// the winning side, a won game. Singles additionally contribute the singles
// counters, the leg scores and the recorded events.
func ComputeDeltas(games []GameRecord) map[int]*StatLine {
	deltas := make(map[int]*StatLine)

	line := func(playerID int) *StatLine {
		d, ok := deltas[playerID]
		if !ok {
			d = &StatLine{}
			deltas[playerID] = d
		}
		return d
	}

	for _, g := range games {
		for _, pid := range g.HomePlayers {
			d := line(pid)
			d.GamesPlayed++
			if g.Winner == SideHome {
				d.GamesWon++
			}
			if g.Type == GameSingle {
				d.SinglesPlayed++
				if g.Winner == SideHome {
					d.SinglesWon++
				}
				d.LegsWon += g.HomeLegs
				d.LegsLost += g.AwayLegs
			}
		}
		for _, pid := range g.AwayPlayers {
			d := line(pid)
			d.GamesPlayed++
			if g.Winner == SideAway {
				d.GamesWon++
			}
			if g.Type == GameSingle {
				d.SinglesPlayed++
				if g.Winner == SideAway {
					d.SinglesWon++
				}
				d.LegsWon += g.AwayLegs
				d.LegsLost += g.HomeLegs
			}
		}

		for _, ev := range g.Events {
			d := line(ev.PlayerID)
			switch ev.Kind {
			case EventScore95:
				d.Score95++
			case EventScore133:
				d.Score133++
			case EventScore170:
				d.Score170++
			case EventCheckout3:
				d.Checkout3++
			case EventCheckout4:
				d.Checkout4++
			case EventCheckout5:
				d.Checkout5++
			case EventCheckout6:
				d.Checkout6++
			case EventHighestCheckout:
				if ev.Value > d.HighestCheckout {
					d.HighestCheckout = ev.Value
				}
			}
		}
	}

	return deltas
}

// Reconcile replaces a match's previous contribution to an aggregate with its
// new one: every additive field becomes existing - old + new. Applying the
// same submission twice is a no-op because old and new then cancel out.
//
// HighestCheckout cannot be subtracted; it is merged as
// max(existing, new). A maximum set by this same match therefore cannot be
// lowered by a correcting re-entry without replaying the player's full
// history, which the league accepts.
func Reconcile(existing, old, new StatLine) StatLine {
	out := StatLine{
		GamesPlayed:   existing.GamesPlayed - old.GamesPlayed + new.GamesPlayed,
		GamesWon:      existing.GamesWon - old.GamesWon + new.GamesWon,
		SinglesPlayed: existing.SinglesPlayed - old.SinglesPlayed + new.SinglesPlayed,
		SinglesWon:    existing.SinglesWon - old.SinglesWon + new.SinglesWon,
		LegsWon:       existing.LegsWon - old.LegsWon + new.LegsWon,
		LegsLost:      existing.LegsLost - old.LegsLost + new.LegsLost,
		Score95:       existing.Score95 - old.Score95 + new.Score95,
		Score133:      existing.Score133 - old.Score133 + new.Score133,
		Score170:      existing.Score170 - old.Score170 + new.Score170,
		Checkout3:     existing.Checkout3 - old.Checkout3 + new.Checkout3,
		Checkout4:     existing.Checkout4 - old.Checkout4 + new.Checkout4,
		Checkout5:     existing.Checkout5 - old.Checkout5 + new.Checkout5,
		Checkout6:     existing.Checkout6 - old.Checkout6 + new.Checkout6,
	}
	out.HighestCheckout = existing.HighestCheckout
	if new.HighestCheckout > out.HighestCheckout {
		out.HighestCheckout = new.HighestCheckout
	}
	return out
}
