package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
)

// Router validates inbound events, applies them to the rooms in the registry and returns the
// notifications to deliver. It does no I/O and must be driven from a single goroutine.
type Router struct {
	rooms *Registry
	log   *slog.Logger
	pick  func(n int) int
}

// NewRouter builds a router over rooms. pick chooses a die face in [0, n); nil means math/rand.
func NewRouter(rooms *Registry, logger *slog.Logger, pick func(n int) int) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	if pick == nil {
		pick = rand.Intn
	}
	return &Router{rooms: rooms, log: logger, pick: pick}
}

func (r *Router) Rooms() *Registry {
	return r.rooms
}

func (r *Router) Handle(e Event) []Outbound {
	switch e.Type {
	case CmdCreateRoom:
		return r.handleCreate(e)
	case CmdJoinRoom:
		return r.handleJoin(e)
	case CmdPlaceBet:
		return r.handlePlaceBet(e)
	case CmdRemoveBet:
		return r.handleRemoveBet(e)
	case CmdRoll, CmdDraw:
		return r.handleRoll(e)
	case CmdChat:
		return r.handleChat(e)
	case CmdDisconnect:
		return r.handleDisconnect(e)
	default:
		r.log.Warn("unknown message", "type", e.Type, "player", e.Player)
		return nil
	}
}

func (r *Router) handleCreate(e Event) []Outbound {
	in := decodeInput(e.Data)
	room, err := r.rooms.Create(string(in.RoomId))
	if err != nil {
		return r.fail(e, err)
	}
	if _, err = room.AddPlayer(e.Player, string(in.Name)); err != nil {
		return r.fail(e, err)
	}
	r.log.Info("room created", "room", room.Id, "host", e.Player)
	return broadcastState(room)
}

func (r *Router) handleJoin(e Event) []Outbound {
	in := decodeInput(e.Data)
	room, err := r.lookup(in)
	if err != nil {
		return r.fail(e, err)
	}
	if room.Has(e.Player) {
		return broadcastState(room)
	}
	player, err := room.AddPlayer(e.Player, string(in.Name))
	if err != nil {
		return r.fail(e, err)
	}
	r.log.Info("player joined", "room", room.Id, "player", player.Id, "name", player.Name)
	return broadcastState(room)
}

func (r *Router) handlePlaceBet(e Event) []Outbound {
	in := decodeInput(e.Data)
	room, err := r.lookup(in)
	if err != nil {
		return r.fail(e, err)
	}
	if err = room.PlaceBet(e.Player, Symbol(in.Symbol), int(in.Amount)); err != nil {
		return r.fail(e, err)
	}
	return broadcastState(room)
}

func (r *Router) handleRemoveBet(e Event) []Outbound {
	in := decodeInput(e.Data)
	room, err := r.lookup(in)
	if err != nil {
		return r.fail(e, err)
	}
	if err = room.RemoveBet(e.Player, Symbol(in.Symbol), int(in.Amount)); err != nil {
		return r.fail(e, err)
	}
	return broadcastState(room)
}

func (r *Router) handleRoll(e Event) []Outbound {
	in := decodeInput(e.Data)
	room, err := r.lookup(in)
	if err != nil {
		return r.fail(e, err)
	}
	draw, err := room.Draw(e.Player, r.pick)
	if err != nil {
		return r.fail(e, err)
	}
	r.log.Info("rolled", "room", room.Id, "roll", draw)
	out := broadcast(room, Message{Type: MsgRollResult, Data: RollResult{Roll: draw}})
	return append(out, broadcastState(room)...)
}

func (r *Router) handleChat(e Event) []Outbound {
	in := decodeInput(e.Data)
	room, err := r.lookup(in)
	if err != nil {
		return r.fail(e, err)
	}
	entry, err := room.PostChat(e.Player, string(in.Message))
	if err != nil {
		return r.fail(e, err)
	}
	return broadcast(room, Message{Type: MsgChat, Data: entry})
}

// handleDisconnect removes the player from every room they were in.
func (r *Router) handleDisconnect(e Event) []Outbound {
	var out []Outbound
	for _, id := range r.rooms.Ids() {
		room, ok := r.rooms.Get(id)
		if !ok || !room.Has(e.Player) {
			continue
		}
		player, newHost, empty := room.RemovePlayer(e.Player)
		if empty {
			r.rooms.Remove(id)
			r.log.Info("room abandoned", "room", id)
			continue
		}

		notice := fmt.Sprintf("%v left", player.Name)
		if newHost != "" {
			host, _ := room.Find(newHost)
			notice = fmt.Sprintf("%v left, %v is now host", player.Name, host.Name)
		}
		entry := room.PostSystem(notice)
		r.log.Info("player left", "room", id, "player", e.Player, "newHost", newHost)

		out = append(out, broadcast(room, Message{Type: MsgChat, Data: entry})...)
		out = append(out, broadcastState(room)...)
	}
	return out
}

func (r *Router) lookup(in roomInput) (*Room, error) {
	id := strings.TrimSpace(string(in.RoomId))
	if id == "" {
		return nil, ErrInvalidId
	}
	room, ok := r.rooms.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return room, nil
}

func (r *Router) fail(e Event, err error) []Outbound {
	if silent(err) {
		r.log.Debug("dropped", "type", e.Type, "player", e.Player, "reason", err)
		return nil
	}
	return []Outbound{{To: e.Player, Msg: Message{Type: MsgError, Data: err.Error()}}}
}

func broadcast(room *Room, msg Message) []Outbound {
	out := make([]Outbound, 0, len(room.Players))
	for _, p := range room.Players {
		out = append(out, Outbound{To: p.Id, Msg: msg})
	}
	return out
}

func broadcastState(room *Room) []Outbound {
	out := make([]Outbound, 0, len(room.Players))
	for _, p := range room.Players {
		out = append(out, Outbound{To: p.Id, Msg: Message{Type: MsgRoomState, Data: room.View(p.Id)}})
	}
	return out
}
