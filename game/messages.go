package game

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// inbound message types
const (
	CmdCreateRoom = "create_room"
	CmdJoinRoom   = "join_room"
	CmdPlaceBet   = "place_bet"
	CmdRemoveBet  = "remove_bet"
	CmdRoll       = "roll"
	CmdDraw       = "draw"
	CmdChat       = "chat_message"
	CmdDisconnect = "disconnect"
)

// outbound message types
const (
	MsgRoomState  = "room_state"
	MsgRollResult = "roll_result"
	MsgChat       = "chat_message"
	MsgError      = "error_msg"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Event struct {
	Type   string
	Player PlayerId
	Data   json.RawMessage
}

type Outbound struct {
	To  PlayerId
	Msg Message
}

type RollResult struct {
	Roll []Symbol `json:"roll"`
}

type roomInput struct {
	RoomId  text   `json:"roomId"`
	Name    text   `json:"name"`
	Symbol  text   `json:"symbol"`
	Amount  amount `json:"amount"`
	Message text   `json:"message"`
}

// decodeInput never fails, fields that are missing or the wrong shape are left empty
func decodeInput(data json.RawMessage) roomInput {
	var in roomInput
	_ = json.Unmarshal(data, &in)
	return in
}

// text accepts a JSON string or number
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = text(n.String())
		return nil
	}
	*t = ""
	return nil
}

// amount accepts a JSON number or numeric string, fractions are truncated and huge values
// saturate so they fail the coin check instead of vanishing
type amount int

func (a *amount) UnmarshalJSON(b []byte) error {
	*a = 0
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	switch {
	case math.IsNaN(f) || f < 0:
		return nil
	case f >= math.MaxInt:
		*a = math.MaxInt
	default:
		*a = amount(f)
	}
	return nil
}
