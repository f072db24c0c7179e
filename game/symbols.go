package game

type Symbol string

const (
	Tiger   Symbol = "tiger"
	Gourd   Symbol = "gourd"
	Rooster Symbol = "rooster"
	Shrimp  Symbol = "shrimp"
	Crab    Symbol = "crab"
	Fish    Symbol = "fish"
)

// Symbols is the fixed set of faces on each die, in display order.
var Symbols = []Symbol{Tiger, Gourd, Rooster, Shrimp, Crab, Fish}

func (s Symbol) Valid() bool {
	for _, symbol := range Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// roll3 picks three faces independently, so repeats are expected.
func roll3(pick func(n int) int) []Symbol {
	draw := make([]Symbol, 3)
	for i := range draw {
		draw[i] = Symbols[pick(len(Symbols))]
	}
	return draw
}
