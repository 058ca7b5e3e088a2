package room

import (
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/pkg/proto"
)

// state describes the current position as an update message. Next is empty
// once the game is over.
func (r *Room) state() *proto.ServerToClientMessage {
	g := r.session.Grid()
	msg := &proto.ServerToClientMessage{
		Type:  proto.TypeUpdate,
		Board: g.RowStrings(),
		Cells: g.String(),
	}

	over, outcome := r.session.IsTerminal()
	switch {
	case outcome.Result == game.Win:
		msg.Winner = string(outcome.Winner)
	case outcome.Result == game.Draw:
		msg.Draw = true
	case !over:
		if next, err := r.session.SymbolToMove(); err == nil {
			msg.Next = string(next)
		}
	}
	return msg
}
