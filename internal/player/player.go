package player

//go:generate mockgen -destination=mock_connection.go -package=player . Connection

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Player is the human side of a room.
type Player struct {
	ID   string
	Conn Connection
}

// NewPlayer creates a player on conn.
func NewPlayer(id string, conn Connection) *Player {
	return &Player{ID: id, Conn: conn}
}
