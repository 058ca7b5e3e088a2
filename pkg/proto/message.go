package proto

// Message types exchanged over the websocket.
const (
	TypeMove       = "move"
	TypeRestart    = "restart"
	TypeAssignment = "assignment"
	TypeUpdate     = "update"
	TypeError      = "error"
)

// ClientToServerMessage represents a message from the client to the server.
// Position holds 1-based (x, y) coordinates with the origin at the bottom left.
type ClientToServerMessage struct {
	Type     string `json:"type" validate:"required,oneof=move restart"`
	Position []int  `json:"position,omitempty" validate:"required_if=Type move,max=2"`
}

// ServerToClientMessage represents a message from the server to the client.
// Board rows are listed top row first; empty cells are "".
type ServerToClientMessage struct {
	Type   string     `json:"type" validate:"required"`
	Reason string     `json:"reason,omitempty"`
	Board  [][]string `json:"board,omitempty"`
	Cells  string     `json:"cells,omitempty"`
	Next   string     `json:"next,omitempty"`
	Winner string     `json:"winner,omitempty"`
	Draw   bool       `json:"draw,omitempty"`
}

// PlayerAssignmentMessage informs a player of their assigned mark.
type PlayerAssignmentMessage struct {
	Type       string `json:"type"`
	RoomID     string `json:"roomId"`
	Mark       string `json:"mark"`
	BotMark    string `json:"botMark"`
	Difficulty string `json:"difficulty"`
}

// MoveRequest asks the HTTP advisor for one bot move on the given cells.
type MoveRequest struct {
	Cells      string `json:"cells" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required,difficulty"`
}

// MoveResponse is the advisor's answer.
type MoveResponse struct {
	Index    int        `json:"index"`
	X        int        `json:"x"`
	Y        int        `json:"y"`
	Symbol   string     `json:"symbol"`
	Cells    string     `json:"cells"`
	Board    [][]string `json:"board"`
	Winner   string     `json:"winner,omitempty"`
	Draw     bool       `json:"draw"`
	Finished bool       `json:"finished"`
}
