package baucua

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/jakecoffman/baucua/game"
)

type PlayerCommandHandler func(Connector, game.PlayerId)

// WsHandler handles player web connections. Browsers whose Origin is not in origins are turned
// away during the handshake.
func WsHandler(cmdHandler PlayerCommandHandler, origins Origins, logger *slog.Logger) websocket.Server {
	return websocket.Server{
		Handshake: func(config *websocket.Config, r *http.Request) error {
			origin := r.Header.Get("Origin")
			if !origins.Allows(origin) {
				logger.Warn("websocket origin blocked", "origin", origin)
				return fmt.Errorf("origin %q not allowed", origin)
			}
			return nil
		},
		Handler: func(ws *websocket.Conn) {
			connHandler(cmdHandler, NewWsConn(ws, logger), logger)
		},
	}
}

type helloMsg struct {
	Type string       `json:"type"`
	Data helloPayload `json:"data"`
}

type helloPayload struct {
	Id game.PlayerId `json:"id"`
}

// testable!
func connHandler(cmdHandler PlayerCommandHandler, ws Connector, logger *slog.Logger) {
	defer ws.Close()

	// every connection is a new player, nothing survives a reconnect
	playerId := game.PlayerId(uuid.New().String())
	logger.Info("player connected", "player", playerId, "ip", ws.Ip())
	ws.Send(&helloMsg{Type: "hello", Data: helloPayload{Id: playerId}})

	cmdHandler(ws, playerId)
	logger.Info("player disconnected", "player", playerId)
}
