package letter

// WinsToUnlock is the number of player wins that unlock the letter.
const WinsToUnlock = 3

// Phase is the game lifecycle.
type Phase int

const (
	// Playing accepts moves.
	Playing Phase = iota
	// RoundResolved waits for ResetRound after a win or tie.
	RoundResolved
	// Unlocked is terminal.
	Unlocked
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case RoundResolved:
		return "round-resolved"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Outcome is the result of a move.
type Outcome int

const (
	// Continue means the round goes on.
	Continue Outcome = iota
	PlayerWon
	OpponentWon
	Tie
	// LetterUnlocked is a player win that reached WinsToUnlock.
	LetterUnlocked
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case PlayerWon:
		return "player-won"
	case OpponentWon:
		return "opponent-won"
	case Tie:
		return "tie"
	case LetterUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Game is a sequence of rounds against a random opponent. Only player wins
// count toward unlocking.
type Game struct {
	board      Board
	phase      Phase
	playerTurn bool
	wins       int
	last       Outcome
	choose     Chooser
}

// New resumes a game from saved progress. A nil chooser uses RandomChooser.
func New(p Progress, choose Chooser) *Game {
	if choose == nil {
		choose = RandomChooser()
	}
	g := &Game{phase: Playing, playerTurn: true, wins: p.Wins, choose: choose}
	if p.Unlocked || p.Wins >= WinsToUnlock {
		g.phase = Unlocked
	}
	return g
}

func (g *Game) Board() Board { return g.board }

func (g *Game) Phase() Phase { return g.phase }

func (g *Game) Wins() int { return g.wins }

// Last returns the outcome of the most recent move.
func (g *Game) Last() Outcome { return g.last }

func (g *Game) Progress() Progress {
	return Progress{Wins: g.wins, Unlocked: g.phase == Unlocked}
}

// PlayerTurn reports whether Play would accept a move on an empty cell.
func (g *Game) PlayerTurn() bool {
	return g.phase == Playing && g.playerTurn
}

// OpponentDue reports whether the computer should move next.
func (g *Game) OpponentDue() bool {
	return g.phase == Playing && !g.playerTurn
}

// Play places the player's mark. It reports false and changes nothing when
// it is not the player's turn or the cell is taken or out of range.
func (g *Game) Play(cell int) (Outcome, bool) {
	if !g.PlayerTurn() || cell < 0 || cell >= len(g.board) || g.board[cell] != Empty {
		return Continue, false
	}
	g.board[cell] = Player

	switch {
	case g.board.Winner() == Player:
		g.wins++
		if g.wins >= WinsToUnlock {
			g.phase = Unlocked
			return g.resolve(LetterUnlocked), true
		}
		g.phase = RoundResolved
		return g.resolve(PlayerWon), true
	case g.board.Full():
		g.phase = RoundResolved
		return g.resolve(Tie), true
	}

	g.playerTurn = false
	return g.resolve(Continue), true
}

// OpponentMove places the computer's mark on a uniformly chosen empty cell.
func (g *Game) OpponentMove() (Outcome, bool) {
	if !g.OpponentDue() {
		return Continue, false
	}
	cells := g.board.EmptyCells()
	i := g.choose(len(cells))
	if i < 0 || i >= len(cells) {
		i = ((i % len(cells)) + len(cells)) % len(cells)
	}
	g.board[cells[i]] = Opponent
	g.playerTurn = true

	switch {
	case g.board.Winner() == Opponent:
		g.phase = RoundResolved
		return g.resolve(OpponentWon), true
	case g.board.Full():
		g.phase = RoundResolved
		return g.resolve(Tie), true
	}
	return g.resolve(Continue), true
}

// ResetRound clears the board after a resolved round. It does nothing while
// a round is in progress or once the letter is unlocked.
func (g *Game) ResetRound() bool {
	if g.phase != RoundResolved {
		return false
	}
	g.board = Board{}
	g.phase = Playing
	g.playerTurn = true
	g.last = Continue
	return true
}

func (g *Game) resolve(o Outcome) Outcome {
	g.last = o
	return o
}
