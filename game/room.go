package game

import (
	"strings"
	"time"
)

const (
	MaxPlayers    = 4
	StartingCoins = 100
	MaxChat       = 50

	defaultName = "Player"
	systemName  = "System"
)

// states
const (
	StatusBetting = "betting"
)

type PlayerId string

type Player struct {
	Id    PlayerId `json:"id"`
	Name  string   `json:"name"`
	Coins int      `json:"coins"`
}

type ChatEntry struct {
	Name string `json:"name"`
	Msg  string `json:"msg"`
	Ts   int64  `json:"ts"`
}

type Room struct {
	Id       string
	HostId   PlayerId
	Status   string
	LastRoll []Symbol

	// Players is kept in join order, host handover and views depend on it
	Players []*Player
	bets    map[PlayerId]map[Symbol]int
	chat    []ChatEntry

	now func() time.Time
}

func NewRoom(id string) *Room {
	return &Room{
		Id:       id,
		Status:   StatusBetting,
		LastRoll: []Symbol{},
		Players:  []*Player{},
		bets:     map[PlayerId]map[Symbol]int{},
		chat:     []ChatEntry{},
		now:      time.Now,
	}
}

// Find returns the player object and the position they are in
func (r *Room) Find(id PlayerId) (*Player, int) {
	for i, player := range r.Players {
		if player.Id == id {
			return player, i
		}
	}
	return nil, -1
}

func (r *Room) Has(id PlayerId) bool {
	_, i := r.Find(id)
	return i != -1
}

func (r *Room) AddPlayer(id PlayerId, name string) (*Player, error) {
	if len(r.Players) >= MaxPlayers {
		return nil, ErrRoomFull
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}
	player := &Player{Id: id, Name: name, Coins: StartingCoins}
	r.Players = append(r.Players, player)
	if r.HostId == "" {
		r.HostId = id
	}
	return player, nil
}

// RemovePlayer drops the player and their stakes. When the host leaves the earliest remaining
// player takes over; newHost is only set when that happened.
func (r *Room) RemovePlayer(id PlayerId) (removed *Player, newHost PlayerId, empty bool) {
	removed, i := r.Find(id)
	if i == -1 {
		return nil, "", len(r.Players) == 0
	}
	r.Players = append(r.Players[0:i], r.Players[i+1:]...)
	delete(r.bets, id)

	if r.HostId == id {
		r.HostId = ""
		if len(r.Players) > 0 {
			r.HostId = r.Players[0].Id
			newHost = r.HostId
		}
	}
	return removed, newHost, len(r.Players) == 0
}

func (r *Room) PlaceBet(id PlayerId, symbol Symbol, amount int) error {
	player, _ := r.Find(id)
	if player == nil {
		return ErrUnknownPlayer
	}
	if !symbol.Valid() || amount <= 0 {
		return ErrInvalidBet
	}
	if player.Coins < amount {
		return ErrInsufficientFunds
	}

	if r.bets[id] == nil {
		r.bets[id] = map[Symbol]int{}
	}
	player.Coins -= amount
	r.bets[id][symbol] += amount
	return nil
}

// RemoveBet refunds up to amount from the stake on symbol. Asking for more than is staked takes
// back the whole stake rather than failing.
func (r *Room) RemoveBet(id PlayerId, symbol Symbol, amount int) error {
	player, _ := r.Find(id)
	if player == nil {
		return ErrUnknownPlayer
	}
	if !symbol.Valid() || amount <= 0 {
		return ErrInvalidBet
	}
	stake := r.bets[id][symbol]
	if stake <= 0 {
		return ErrNoStake
	}

	take := min(amount, stake)
	r.bets[id][symbol] = stake - take
	player.Coins += take
	return nil
}

func (r *Room) Bets(id PlayerId) map[Symbol]int {
	bets := map[Symbol]int{}
	for s, amount := range r.bets[id] {
		bets[s] = amount
	}
	return bets
}

// PendingStakes is the total of all stakes waiting on the next draw.
func (r *Room) PendingStakes() int {
	var total int
	for _, bet := range r.bets {
		for _, amount := range bet {
			total += amount
		}
	}
	return total
}

func (r *Room) Draw(caller PlayerId, pick func(n int) int) ([]Symbol, error) {
	if caller == "" || caller != r.HostId {
		return nil, ErrNotHost
	}

	draw := roll3(pick)
	for _, player := range r.Players {
		bet, ok := r.bets[player.Id]
		if !ok {
			continue
		}
		player.Coins += Settle(draw, bet).Payout
	}
	r.bets = map[PlayerId]map[Symbol]int{}
	r.LastRoll = draw
	return draw, nil
}

func (r *Room) PostChat(id PlayerId, message string) (ChatEntry, error) {
	player, _ := r.Find(id)
	if player == nil {
		return ChatEntry{}, ErrUnknownPlayer
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatEntry{}, ErrEmptyMessage
	}
	return r.appendChat(player.Name, message), nil
}

func (r *Room) PostSystem(message string) ChatEntry {
	return r.appendChat(systemName, message)
}

func (r *Room) appendChat(name, message string) ChatEntry {
	entry := ChatEntry{Name: name, Msg: message, Ts: r.now().UnixMilli()}
	r.chat = append(r.chat, entry)
	if len(r.chat) > MaxChat {
		r.chat = append([]ChatEntry{}, r.chat[len(r.chat)-MaxChat:]...)
	}
	return entry
}

func (r *Room) Chat() []ChatEntry {
	return append([]ChatEntry{}, r.chat...)
}
