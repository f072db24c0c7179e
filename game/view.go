package game

// View is what one member sees of a room. Everything is shared except MyBets.
type View struct {
	RoomId   string         `json:"roomId"`
	HostId   PlayerId       `json:"hostId"`
	Status   string         `json:"status"`
	LastRoll []Symbol       `json:"lastRoll"`
	Symbols  []Symbol       `json:"symbols"`
	Players  []Player       `json:"players"`
	MyBets   map[Symbol]int `json:"myBets"`
	Chat     []ChatEntry    `json:"chat"`
}

func (r *Room) View(recipient PlayerId) View {
	players := make([]Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, *p)
	}
	return View{
		RoomId:   r.Id,
		HostId:   r.HostId,
		Status:   r.Status,
		LastRoll: append([]Symbol{}, r.LastRoll...),
		Symbols:  Symbols,
		Players:  players,
		MyBets:   r.Bets(recipient),
		Chat:     r.Chat(),
	}
}

type Summary struct {
	RoomId     string   `json:"roomId"`
	HostId     PlayerId `json:"hostId"`
	Players    int      `json:"players"`
	PendingBet int      `json:"pendingBets"`
}

func (r *Room) Summary() Summary {
	return Summary{RoomId: r.Id, HostId: r.HostId, Players: len(r.Players), PendingBet: r.PendingStakes()}
}
