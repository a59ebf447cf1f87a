package game

// Action represents a player decision during their turn
type Action int

const (
	Hit Action = iota
	Stand
	DoubleDown
	Split
)

func (a Action) String() string {
	return [...]string{"hit", "stand", "double down", "split"}[a]
}

// Outcome is the settlement result for one hand.
type Outcome int

const (
	Push Outcome = iota
	Win
	Loss
)

func (o Outcome) String() string {
	return [...]string{"push", "win", "loss"}[o]
}
