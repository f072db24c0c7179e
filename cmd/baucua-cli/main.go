package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/net/websocket"

	"github.com/jakecoffman/baucua/game"
)

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type client struct {
	ws   *websocket.Conn
	name string
	room string
	me   game.PlayerId
}

func main() {
	url := flag.String("url", "ws://localhost:3001/ws", "server websocket url")
	origin := flag.String("origin", "http://localhost:5173", "origin to present to the server")
	name := flag.String("name", "Player", "your display name")
	flag.Parse()

	ws, err := websocket.Dial(*url, "", *origin)
	if err != nil {
		pterm.Error.Println("could not connect:", err)
		os.Exit(1)
	}
	defer ws.Close()

	c := &client{ws: ws, name: *name}
	pterm.DefaultHeader.Println("Bau Cua")
	pterm.Info.Println("commands: create <room> | join <room> | bet <symbol> <n> | unbet <symbol> <n> | roll | say <msg> | quit")

	go c.read()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" {
			return
		}
		if err := c.command(fields); err != nil {
			pterm.Warning.Println(err)
		}
	}
}

func (c *client) command(fields []string) error {
	switch fields[0] {
	case "create", "join":
		if len(fields) < 2 {
			return fmt.Errorf("usage: %v <room>", fields[0])
		}
		c.room = fields[1]
		return c.send(fields[0]+"_room", map[string]string{"roomId": c.room, "name": c.name})
	case "bet", "unbet":
		if len(fields) < 3 {
			return fmt.Errorf("usage: %v <symbol> <amount>", fields[0])
		}
		amount, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("bad amount %q", fields[2])
		}
		typ := game.CmdPlaceBet
		if fields[0] == "unbet" {
			typ = game.CmdRemoveBet
		}
		return c.send(typ, map[string]interface{}{"roomId": c.room, "symbol": fields[1], "amount": amount})
	case "roll":
		return c.send(game.CmdRoll, map[string]string{"roomId": c.room})
	case "say":
		return c.send(game.CmdChat, map[string]string{"roomId": c.room, "message": strings.Join(fields[1:], " ")})
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func (c *client) send(typ string, data interface{}) error {
	return websocket.JSON.Send(c.ws, map[string]interface{}{"type": typ, "data": data})
}

func (c *client) read() {
	for {
		var msg envelope
		if err := websocket.JSON.Receive(c.ws, &msg); err != nil {
			pterm.Error.Println("connection lost:", err)
			os.Exit(1)
		}
		if err := c.show(msg); err != nil {
			pterm.Warning.Println("bad message from server:", err)
		}
	}
}

func (c *client) show(msg envelope) error {
	switch msg.Type {
	case "hello":
		var hello struct {
			Id game.PlayerId `json:"id"`
		}
		if err := json.Unmarshal(msg.Data, &hello); err != nil {
			return err
		}
		c.me = hello.Id
	case game.MsgRoomState:
		var view game.View
		if err := json.Unmarshal(msg.Data, &view); err != nil {
			return err
		}
		c.render(view)
	case game.MsgRollResult:
		var roll game.RollResult
		if err := json.Unmarshal(msg.Data, &roll); err != nil {
			return err
		}
		pterm.DefaultBox.WithTitle("ROLL").Println(fmt.Sprint(roll.Roll))
	case game.MsgChat:
		var entry game.ChatEntry
		if err := json.Unmarshal(msg.Data, &entry); err != nil {
			return err
		}
		pterm.Println(pterm.LightCyan(entry.Name+":"), entry.Msg)
	case game.MsgError:
		var text string
		if err := json.Unmarshal(msg.Data, &text); err != nil {
			return err
		}
		pterm.Error.Println(text)
	}
	return nil
}

func (c *client) render(view game.View) {
	rows := pterm.TableData{{"Player", "Coins", ""}}
	for _, p := range view.Players {
		var tags []string
		if p.Id == view.HostId {
			tags = append(tags, "host")
		}
		if p.Id == c.me {
			tags = append(tags, "you")
		}
		rows = append(rows, []string{p.Name, strconv.Itoa(p.Coins), strings.Join(tags, ",")})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	var bets []string
	for _, s := range view.Symbols {
		if n := view.MyBets[s]; n > 0 {
			bets = append(bets, fmt.Sprintf("%v=%d", s, n))
		}
	}
	pterm.Info.Printfln("room %v | last roll %v | your bets %v", view.RoomId, view.LastRoll, strings.Join(bets, " "))
}
