package game

type Settlement struct {
	TotalStaked int
	Payout      int
	Net         int
}

// Settle pays each stake once per matching die. Stakes were taken from the player's coins when
// the bet was placed, so callers credit Payout and never deduct TotalStaked again.
func Settle(draw []Symbol, bet map[Symbol]int) Settlement {
	counts := map[Symbol]int{}
	for _, s := range draw {
		if s.Valid() {
			counts[s]++
		}
	}

	var result Settlement
	for _, s := range Symbols {
		stake := bet[s]
		if stake <= 0 {
			continue
		}
		result.TotalStaked += stake
		result.Payout += stake * counts[s]
	}
	result.Net = result.Payout - result.TotalStaked
	return result
}
