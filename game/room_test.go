package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faces returns a picker that replays the given die faces
func faces(f ...int) func(int) int {
	return func(int) int {
		next := f[0]
		f = f[1:]
		return next
	}
}

func newTestRoom(t *testing.T, players ...PlayerId) *Room {
	room := NewRoom("r1")
	for _, id := range players {
		_, err := room.AddPlayer(id, string(id))
		require.NoError(t, err)
	}
	return room
}

func TestAddPlayer(t *testing.T) {
	room := NewRoom("r1")

	p, err := room.AddPlayer("a", "  ")
	require.NoError(t, err)
	assert.Equal(t, "Player", p.Name)
	assert.Equal(t, StartingCoins, p.Coins)
	assert.Equal(t, PlayerId("a"), room.HostId, "first player is host")

	_, err = room.AddPlayer("b", "bob")
	require.NoError(t, err)
	assert.Equal(t, PlayerId("a"), room.HostId)
}

func TestAddPlayer_Full(t *testing.T) {
	room := newTestRoom(t, "a", "b", "c", "d")

	_, err := room.AddPlayer("e", "eve")
	assert.ErrorIs(t, err, ErrRoomFull)
	assert.Len(t, room.Players, MaxPlayers)
	assert.False(t, room.Has("e"))
}

func TestBetRoundTrip(t *testing.T) {
	room := newTestRoom(t, "a")

	require.NoError(t, room.PlaceBet("a", Crab, 30))
	p, _ := room.Find("a")
	assert.Equal(t, 70, p.Coins)
	assert.Equal(t, map[Symbol]int{Crab: 30}, room.Bets("a"))

	require.NoError(t, room.RemoveBet("a", Crab, 30))
	assert.Equal(t, StartingCoins, p.Coins)
	assert.Equal(t, 0, room.Bets("a")[Crab])
}

func TestPlaceBet_Accumulates(t *testing.T) {
	room := newTestRoom(t, "a")

	require.NoError(t, room.PlaceBet("a", Fish, 10))
	require.NoError(t, room.PlaceBet("a", Fish, 15))
	assert.Equal(t, 25, room.Bets("a")[Fish])
	assert.Equal(t, 25, room.PendingStakes())
}

func TestPlaceBet_Rejected(t *testing.T) {
	room := newTestRoom(t, "a")

	assert.ErrorIs(t, room.PlaceBet("nobody", Fish, 1), ErrUnknownPlayer)
	assert.ErrorIs(t, room.PlaceBet("a", "dragon", 1), ErrInvalidBet)
	assert.ErrorIs(t, room.PlaceBet("a", Fish, 0), ErrInvalidBet)
	assert.ErrorIs(t, room.PlaceBet("a", Fish, -5), ErrInvalidBet)
	assert.ErrorIs(t, room.PlaceBet("a", Fish, 101), ErrInsufficientFunds)

	p, _ := room.Find("a")
	assert.Equal(t, StartingCoins, p.Coins)
	assert.Empty(t, room.Bets("a"))
}

func TestRemoveBet_Clamps(t *testing.T) {
	room := newTestRoom(t, "a")
	require.NoError(t, room.PlaceBet("a", Gourd, 20))

	require.NoError(t, room.RemoveBet("a", Gourd, 500))
	p, _ := room.Find("a")
	assert.Equal(t, StartingCoins, p.Coins)
	assert.Equal(t, 0, room.Bets("a")[Gourd])

	assert.ErrorIs(t, room.RemoveBet("a", Gourd, 1), ErrNoStake)
	assert.Equal(t, StartingCoins, p.Coins)
}

func TestRemoveBet_Rejected(t *testing.T) {
	room := newTestRoom(t, "a")
	require.NoError(t, room.PlaceBet("a", Gourd, 20))

	assert.ErrorIs(t, room.RemoveBet("nobody", Gourd, 1), ErrUnknownPlayer)
	assert.ErrorIs(t, room.RemoveBet("a", "dragon", 1), ErrInvalidBet)
	assert.ErrorIs(t, room.RemoveBet("a", Gourd, 0), ErrInvalidBet)
	assert.ErrorIs(t, room.RemoveBet("a", Tiger, 5), ErrNoStake)
	assert.Equal(t, 20, room.Bets("a")[Gourd])
}

func TestDraw(t *testing.T) {
	room := newTestRoom(t, "a", "b", "c")
	require.NoError(t, room.PlaceBet("a", Tiger, 10))
	require.NoError(t, room.PlaceBet("b", Fish, 40))
	require.NoError(t, room.PlaceBet("b", Crab, 10))

	draw, err := room.Draw("a", faces(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, []Symbol{Tiger, Tiger, Fish}, draw)
	assert.Equal(t, draw, room.LastRoll)

	a, _ := room.Find("a")
	b, _ := room.Find("b")
	c, _ := room.Find("c")
	assert.Equal(t, 90+20, a.Coins)
	assert.Equal(t, 50+40, b.Coins)
	assert.Equal(t, StartingCoins, c.Coins)

	for _, p := range room.Players {
		assert.Empty(t, room.Bets(p.Id))
	}
	assert.Zero(t, room.PendingStakes())
}

func TestDraw_NotHost(t *testing.T) {
	room := newTestRoom(t, "a", "b")
	require.NoError(t, room.PlaceBet("b", Fish, 10))

	_, err := room.Draw("b", faces(5, 5, 5))
	assert.ErrorIs(t, err, ErrNotHost)
	_, err = room.Draw("stranger", faces(5, 5, 5))
	assert.ErrorIs(t, err, ErrNotHost)

	assert.Empty(t, room.LastRoll)
	assert.Equal(t, 10, room.Bets("b")[Fish])
}

func TestRemovePlayer_HostHandover(t *testing.T) {
	room := newTestRoom(t, "a", "b", "c")
	require.NoError(t, room.PlaceBet("a", Shrimp, 5))

	removed, newHost, empty := room.RemovePlayer("a")
	require.NotNil(t, removed)
	assert.Equal(t, PlayerId("a"), removed.Id)
	assert.Equal(t, PlayerId("b"), newHost)
	assert.Equal(t, PlayerId("b"), room.HostId)
	assert.False(t, empty)
	assert.Zero(t, room.PendingStakes())

	_, newHost, empty = room.RemovePlayer("c")
	assert.Empty(t, newHost, "non host leaving keeps host")
	assert.False(t, empty)

	_, newHost, empty = room.RemovePlayer("b")
	assert.Empty(t, newHost)
	assert.True(t, empty)
	assert.Empty(t, room.HostId)
}

func TestRemovePlayer_Unknown(t *testing.T) {
	room := newTestRoom(t, "a")
	removed, _, empty := room.RemovePlayer("zzz")
	assert.Nil(t, removed)
	assert.False(t, empty)
}

func TestChat(t *testing.T) {
	room := newTestRoom(t, "a")

	_, err := room.PostChat("a", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	_, err = room.PostChat("nobody", "hi")
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	entry, err := room.PostChat("a", "  hello ")
	require.NoError(t, err)
	assert.Equal(t, "a", entry.Name)
	assert.Equal(t, "hello", entry.Msg)
	assert.NotZero(t, entry.Ts)
}

func TestChat_Capped(t *testing.T) {
	room := newTestRoom(t, "a")
	for i := 0; i < MaxChat+7; i++ {
		_, err := room.PostChat("a", fmt.Sprint("msg ", i))
		require.NoError(t, err)
	}

	chat := room.Chat()
	require.Len(t, chat, MaxChat)
	assert.Equal(t, "msg 7", chat[0].Msg)
	assert.Equal(t, fmt.Sprint("msg ", MaxChat+6), chat[MaxChat-1].Msg)
}

func TestView_Personalized(t *testing.T) {
	room := newTestRoom(t, "a", "b")
	require.NoError(t, room.PlaceBet("a", Tiger, 3))
	require.NoError(t, room.PlaceBet("b", Crab, 4))
	_, err := room.PostChat("b", "gl")
	require.NoError(t, err)

	va := room.View("a")
	vb := room.View("b")

	assert.Equal(t, map[Symbol]int{Tiger: 3}, va.MyBets)
	assert.Equal(t, map[Symbol]int{Crab: 4}, vb.MyBets)
	assert.Equal(t, va.Players, vb.Players)
	assert.Equal(t, va.Chat, vb.Chat)
	assert.Equal(t, Symbols, va.Symbols)
	assert.Equal(t, StatusBetting, va.Status)
	assert.Equal(t, []Player{{"a", "a", 97}, {"b", "b", 96}}, va.Players)

	assert.NotNil(t, room.View("stranger").MyBets)
	assert.Empty(t, room.View("stranger").MyBets)
}
