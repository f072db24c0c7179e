package baucua

import (
	"encoding/json"
	"errors"

	"github.com/jakecoffman/baucua/game"
)

// hub-only message types
const (
	cmdConnect    = "connect"
	cmdDisconnect = game.CmdDisconnect
	cmdRooms      = "rooms"
)

type Command struct {
	PlayerId game.PlayerId   `json:"-"`
	Ws       Connector       `json:"-"`
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`

	reply chan []game.Summary
}

// ProcessPlayerCommands reads commands off the connection until it fails, then tells the hub
// the player is gone.
func ProcessPlayerCommands(hub *Hub) PlayerCommandHandler {
	return func(ws Connector, playerId game.PlayerId) {
		hub.Cmd(&Command{Type: cmdConnect, PlayerId: playerId, Ws: ws})
		defer hub.Cmd(&Command{Type: cmdDisconnect, PlayerId: playerId})

		for {
			input := &Command{}
			if err := ws.Recv(input); err != nil {
				if malformed(err) {
					hub.log.Debug("ignoring malformed frame", "player", playerId, "error", err)
					continue
				}
				hub.log.Debug("read ended", "player", playerId, "error", err)
				return
			}
			switch input.Type {
			case cmdConnect, cmdDisconnect, cmdRooms:
				// players can't forge hub bookkeeping
				continue
			}
			input.PlayerId = playerId
			input.Ws = ws
			hub.Cmd(input)
		}
	}
}

func malformed(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
