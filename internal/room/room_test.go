package room

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/grid"
	"ctchen222/tictactoe-engine/internal/player"
	"ctchen222/tictactoe-engine/pkg/proto"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testRoom struct {
	room    *Room
	conn    *player.MockConnection
	session *game.Session
	writes  [][]byte
}

func newTestRoom(t *testing.T, human grid.Symbol, difficulty bot.Difficulty) *testRoom {
	t.Helper()
	ctrl := gomock.NewController(t)
	conn := player.NewMockConnection(ctrl)

	session, err := game.NewSession(3, grid.DefaultPair, nil)
	require.NoError(t, err)

	r, err := NewRoom("room-1", player.NewPlayer("player-1", conn), session, difficulty, human)
	require.NoError(t, err)

	tr := &testRoom{room: r, conn: conn, session: session}
	conn.EXPECT().WriteMessage(websocket.TextMessage, gomock.Any()).DoAndReturn(func(_ int, data []byte) error {
		tr.writes = append(tr.writes, data)
		return nil
	}).AnyTimes()
	return tr
}

func (tr *testRoom) update(t *testing.T, i int) proto.ServerToClientMessage {
	t.Helper()
	require.Greater(t, len(tr.writes), i)
	var msg proto.ServerToClientMessage
	require.NoError(t, json.Unmarshal(tr.writes[i], &msg))
	return msg
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestNewRoomRejectsBadSettings(t *testing.T) {
	session, err := game.NewSession(3, grid.DefaultPair, nil)
	require.NoError(t, err)
	p := player.NewPlayer("p", nil)

	_, err = NewRoom("r", p, session, "insane", grid.SymbolX)
	assert.ErrorIs(t, err, bot.ErrUnsupportedDifficulty)

	_, err = NewRoom("r", p, session, bot.Hard, "Z")
	assert.ErrorIs(t, err, grid.ErrConfiguration)

	large, err := game.NewSession(4, grid.DefaultPair, nil)
	require.NoError(t, err)
	_, err = NewRoom("r", p, large, bot.Hard, grid.SymbolX)
	assert.ErrorIs(t, err, bot.ErrUnsupportedDifficulty)
	_, err = NewRoom("r", p, large, bot.Medium, grid.SymbolX)
	assert.NoError(t, err)
}

func TestRunHumanMovesFirst(t *testing.T) {
	tr := newTestRoom(t, grid.SymbolX, bot.Hard)
	move := mustJSON(t, proto.ClientToServerMessage{Type: proto.TypeMove, Position: []int{1, 3}})

	gomock.InOrder(
		tr.conn.EXPECT().ReadMessage().Return(websocket.TextMessage, move, nil),
		tr.conn.EXPECT().ReadMessage().Return(0, nil, errors.New("connection closed")),
	)
	tr.conn.EXPECT().Close().Return(nil)

	tr.room.Run(context.Background())

	require.Len(t, tr.writes, 3)

	var assignment proto.PlayerAssignmentMessage
	require.NoError(t, json.Unmarshal(tr.writes[0], &assignment))
	assert.Equal(t, proto.PlayerAssignmentMessage{
		Type:       proto.TypeAssignment,
		RoomID:     "room-1",
		Mark:       "X",
		BotMark:    "O",
		Difficulty: "hard",
	}, assignment)

	opening := tr.update(t, 1)
	assert.Equal(t, proto.TypeUpdate, opening.Type)
	assert.Equal(t, "_________", opening.Cells)
	assert.Equal(t, "X", opening.Next)

	reply := tr.update(t, 2)
	assert.Equal(t, "X___O____", reply.Cells)
	assert.Equal(t, [][]string{{"X", "", ""}, {"", "O", ""}, {"", "", ""}}, reply.Board)
	assert.Equal(t, "X", reply.Next)
	assert.Empty(t, reply.Winner)
	assert.False(t, reply.Draw)
}

func TestRunBotMovesFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("searches the full game tree")
	}
	tr := newTestRoom(t, grid.SymbolO, bot.Hard)
	tr.conn.EXPECT().ReadMessage().Return(0, nil, errors.New("connection closed"))
	tr.conn.EXPECT().Close().Return(nil)

	tr.room.Run(context.Background())

	require.Len(t, tr.writes, 2)
	opening := tr.update(t, 1)
	assert.Equal(t, "X________", opening.Cells)
	assert.Equal(t, "O", opening.Next)
}

func TestHandleMessageErrors(t *testing.T) {
	tests := []struct {
		name   string
		human  grid.Symbol
		cells  string
		msg    string
		reason string
	}{
		{
			name:   "Malformed JSON",
			human:  grid.SymbolX,
			msg:    `{"type":`,
			reason: "Malformed message",
		},
		{
			name:   "Unknown type",
			human:  grid.SymbolX,
			msg:    `{"type":"rematch"}`,
			reason: "Invalid message",
		},
		{
			name:   "Move without position",
			human:  grid.SymbolX,
			msg:    `{"type":"move"}`,
			reason: "Invalid message",
		},
		{
			name:   "One coordinate",
			human:  grid.SymbolX,
			msg:    `{"type":"move","position":[1]}`,
			reason: "Position needs two coordinates",
		},
		{
			name:   "Out of range",
			human:  grid.SymbolX,
			msg:    `{"type":"move","position":[4,1]}`,
			reason: "Coordinates should be from 1 to 3!",
		},
		{
			name:   "Occupied",
			human:  grid.SymbolX,
			cells:  "X___O____",
			msg:    `{"type":"move","position":[2,2]}`,
			reason: "This cell is occupied! Choose another one!",
		},
		{
			name:   "Not your turn",
			human:  grid.SymbolO,
			msg:    `{"type":"move","position":[2,2]}`,
			reason: "Not your turn",
		},
		{
			name:   "Game over",
			human:  grid.SymbolX,
			cells:  "XXXOO____",
			msg:    `{"type":"move","position":[1,1]}`,
			reason: "Game is over",
		},
		{
			name:   "Inconsistent counts",
			human:  grid.SymbolX,
			cells:  "XX_X_____",
			msg:    `{"type":"move","position":[1,1]}`,
			reason: "Invalid game state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestRoom(t, tt.human, bot.Hard)
			if tt.cells != "" {
				require.NoError(t, tr.session.Load(tt.cells))
			}
			before := tr.session.Grid().String()

			tr.room.HandleMessage(context.Background(), []byte(tt.msg))

			require.Len(t, tr.writes, 1)
			msg := tr.update(t, 0)
			assert.Equal(t, proto.TypeError, msg.Type)
			assert.Equal(t, tt.reason, msg.Reason)
			assert.Equal(t, before, tr.session.Grid().String(), "rejected messages leave the board alone")
		})
	}
}

func TestHandleMessageWinningMove(t *testing.T) {
	tr := newTestRoom(t, grid.SymbolX, bot.Hard)
	require.NoError(t, tr.session.Load("XX_OO____"))

	tr.room.HandleMessage(context.Background(), mustJSON(t, proto.ClientToServerMessage{
		Type:     proto.TypeMove,
		Position: []int{3, 3},
	}))

	require.Len(t, tr.writes, 1)
	msg := tr.update(t, 0)
	assert.Equal(t, "XXXOO____", msg.Cells, "the bot does not move after the game ends")
	assert.Equal(t, "X", msg.Winner)
	assert.Empty(t, msg.Next)
}

func TestHandleMessageBotCompletesDraw(t *testing.T) {
	tr := newTestRoom(t, grid.SymbolX, bot.Medium)
	// X O X
	// X O O
	// O X _  with X to move: the last cell fills the board.
	require.NoError(t, tr.session.Load("XOXXOOOX_"))

	tr.room.HandleMessage(context.Background(), []byte(`{"type":"move","position":[3,1]}`))

	msg := tr.update(t, 0)
	assert.Equal(t, "XOXXOOOXX", msg.Cells)
	assert.True(t, msg.Draw)
	assert.Empty(t, msg.Winner)
}

func TestHandleMessageRestart(t *testing.T) {
	tr := newTestRoom(t, grid.SymbolX, bot.Easy)
	require.NoError(t, tr.session.Load("XXXOO____"))

	tr.room.HandleMessage(context.Background(), []byte(`{"type":"restart"}`))

	msg := tr.update(t, 0)
	assert.Equal(t, proto.TypeUpdate, msg.Type)
	assert.Equal(t, "_________", msg.Cells)
	assert.Equal(t, "X", msg.Next)
}
