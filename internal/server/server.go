package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"ctchen222/tictactoe-engine/internal/api/response"
	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/grid"
	"ctchen222/tictactoe-engine/internal/hub"
	"ctchen222/tictactoe-engine/internal/player"
	"ctchen222/tictactoe-engine/internal/room"
	"ctchen222/tictactoe-engine/internal/validator"
	"ctchen222/tictactoe-engine/pkg/proto"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "ctchen222/tictactoe-engine/internal/server"

func init() {
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		if err := validator.Register(v); err != nil {
			panic(err)
		}
	}
}

type Server struct {
	side     int
	players  grid.Pair
	bot      *bot.Bot
	hub      *hub.Hub
	engine   *gin.Engine
	upgrader websocket.Upgrader
	tracer   trace.Tracer
}

// NewServer creates the HTTP surface for games on side x side grids. The bot
// is shared by every request and room, so its random source must be safe for
// concurrent use; nil b gets a default bot.
func NewServer(side int, players grid.Pair, b *bot.Bot) *Server {
	if b == nil {
		b = bot.New(players, nil)
	}
	s := &Server{
		side:    side,
		players: players,
		bot:     b,
		hub:     hub.NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		tracer: otel.Tracer(instrumentationName),
	}
	s.engine = s.routes()
	return s
}

// CloseRooms disconnects every websocket player. http.Server.Shutdown does
// not touch hijacked connections, so call this after it.
func (s *Server) CloseRooms(ctx context.Context) {
	s.hub.CloseAll(ctx)
}

// Engine returns the gin engine serving every route.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.traceRequests())

	r.GET("/healthz", s.handleHealth)
	r.GET("/ws", s.handleWebSocket)

	v1 := r.Group("/api/v1")
	v1.POST("/moves", s.handleMove)

	return r
}

// traceRequests starts a server span per request, continuing any trace
// found in the request headers.
func (s *Server) traceRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := s.tracer.Start(ctx, c.Request.Method+" "+c.FullPath(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.url", c.Request.URL.String()),
			))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	response.SuccessResponse(c, gin.H{"status": "ok", "rooms": s.hub.Rooms()})
}

// handleMove plays one bot move on the posted position.
func (s *Server) handleMove(c *gin.Context) {
	var req proto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.advise(c.Request.Context(), &req)
	if err != nil {
		span := trace.SpanFromContext(c.Request.Context())
		span.RecordError(err)
		slog.WarnContext(c.Request.Context(), "move request rejected", "grid.cells", req.Cells, "error", err)
		response.AbortWithError(c, err)
		return
	}

	response.SuccessResponse(c, resp)
}

func (s *Server) advise(ctx context.Context, req *proto.MoveRequest) (*proto.MoveResponse, error) {
	difficulty, err := bot.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, response.NewError(http.StatusBadRequest, err.Error())
	}
	if err := difficulty.CheckSide(s.side); err != nil {
		return nil, response.NewError(http.StatusBadRequest, err.Error())
	}

	session, err := game.NewSession(s.side, s.players, s.bot)
	if err != nil {
		return nil, err
	}
	if err := session.Load(req.Cells); err != nil {
		return nil, response.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	if err := s.checkSymbols(session.Grid()); err != nil {
		return nil, response.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	symbol, err := session.SymbolToMove()
	if err != nil {
		return nil, response.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	if over, outcome := session.IsTerminal(); over {
		return nil, response.NewError(http.StatusConflict, fmt.Sprintf("game is already over: %s", outcome))
	}

	index, err := session.BotMove(ctx, difficulty, symbol)
	if err != nil {
		return nil, err
	}

	g := session.Grid()
	x, y := g.Coordinates(index)
	over, outcome := session.IsTerminal()
	return &proto.MoveResponse{
		Index:    index,
		X:        x,
		Y:        y,
		Symbol:   string(symbol),
		Cells:    g.String(),
		Board:    g.RowStrings(),
		Winner:   string(outcome.Winner),
		Draw:     outcome.Result == game.Draw,
		Finished: over,
	}, nil
}

// checkSymbols rejects cells holding anything but the two players' symbols.
func (s *Server) checkSymbols(g *grid.Grid) error {
	for i, c := range g.Cells() {
		if c != grid.Empty && !s.players.Contains(c) {
			return fmt.Errorf("%w: cell %d holds %q, want %s, %s or %c",
				grid.ErrConfiguration, i, c, s.players.First(), s.players.Second(), grid.EmptyMarker)
		}
	}
	return nil
}

// handleWebSocket upgrades the connection and runs a room on it until the
// player leaves. Query parameters: difficulty (default easy) and mark
// (default the first player).
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := s.tracer.Start(c.Request.Context(), "server.handleWebSocket")
	defer span.End()

	difficulty, err := bot.ParseDifficulty(c.DefaultQuery("difficulty", string(bot.Easy)))
	if err == nil {
		err = difficulty.CheckSide(s.side)
	}
	if err != nil {
		span.RecordError(err)
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	mark := grid.Symbol(c.DefaultQuery("mark", string(s.players.First())))
	if !s.players.Contains(mark) {
		err := fmt.Errorf("%w: mark %q", grid.ErrConfiguration, mark)
		span.RecordError(err)
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.String("game.difficulty", string(difficulty)), attribute.String("player.mark", string(mark)))

	session, err := game.NewSession(s.side, s.players, s.bot)
	if err != nil {
		span.RecordError(err)
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	playerID := c.Query("playerId")
	if playerID == "" {
		playerID = uuid.New().String()
	}
	span.SetAttributes(attribute.String("player.id", playerID))

	rm, err := room.NewRoom(uuid.New().String(), player.NewPlayer(playerID, conn), session, difficulty, mark)
	if err != nil {
		// Unreachable after the checks above.
		span.RecordError(errors.Join(err, conn.Close()))
		return
	}
	s.hub.Run(ctx, rm)
}
