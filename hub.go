package baucua

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/jakecoffman/baucua/game"
)

// Hub owns every room. All commands funnel through one goroutine so room state never needs
// locking and each room's broadcasts go out in the order its changes happened.
type Hub struct {
	cmd  chan *Command
	done chan struct{}

	conns  map[game.PlayerId]Connector
	router *game.Router
	log    *slog.Logger
}

func NewHub(router *game.Router, logger *slog.Logger) *Hub {
	return &Hub{
		cmd:    make(chan *Command),
		done:   make(chan struct{}),
		conns:  map[game.PlayerId]Connector{},
		router: router,
		log:    logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.log.Info("hub stopped", "rooms", h.router.Rooms().Len(), "conns", len(h.conns))
			return
		case cmd := <-h.cmd:
			h.handle(cmd)
		}
	}
}

// Cmd hands a command to the hub goroutine. It is dropped if the hub has stopped.
func (h *Hub) Cmd(c *Command) {
	select {
	case h.cmd <- c:
	case <-h.done:
	}
}

// Rooms returns a summary of every open room, read on the hub goroutine.
func (h *Hub) Rooms(ctx context.Context) ([]game.Summary, error) {
	reply := make(chan []game.Summary, 1)
	select {
	case h.cmd <- &Command{Type: cmdRooms, reply: reply}:
	case <-h.done:
		return nil, context.Canceled
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case summaries := <-reply:
		return summaries, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Hub) handle(cmd *Command) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("command crashed", "panic", r, "type", cmd.Type, "player", cmd.PlayerId, "stack", string(debug.Stack()))
		}
	}()

	switch cmd.Type {
	case cmdConnect:
		h.conns[cmd.PlayerId] = cmd.Ws
	case cmdRooms:
		cmd.reply <- h.summaries()
	case cmdDisconnect:
		h.deliver(h.router.Handle(game.Event{Type: game.CmdDisconnect, Player: cmd.PlayerId}))
		delete(h.conns, cmd.PlayerId)
	default:
		h.deliver(h.router.Handle(game.Event{Type: cmd.Type, Player: cmd.PlayerId, Data: cmd.Data}))
	}
}

func (h *Hub) deliver(out []game.Outbound) {
	for _, o := range out {
		ws, ok := h.conns[o.To]
		if !ok {
			h.log.Warn("no connection for player", "player", o.To, "type", o.Msg.Type)
			continue
		}
		ws.Send(o.Msg)
	}
}

func (h *Hub) summaries() []game.Summary {
	rooms := h.router.Rooms()
	summaries := []game.Summary{}
	for _, id := range rooms.Ids() {
		if room, ok := rooms.Get(id); ok {
			summaries = append(summaries, room.Summary())
		}
	}
	return summaries
}
