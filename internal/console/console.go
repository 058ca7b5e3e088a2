// Package console is the interactive text front end: a command loop that
// starts games between users and bots and renders the board after each move.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/grid"
	"ctchen222/tictactoe-engine/internal/validator"
)

// StartCommand is a parsed "start <first> <second>" line.
type StartCommand struct {
	Action string `validate:"eq=start"`
	First  string `validate:"required,participant"`
	Second string `validate:"required,participant"`
}

// Console reads commands and moves from in and writes prompts, boards and
// results to out.
type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	session *game.Session
}

// New creates a console playing on session.
func New(in io.Reader, out io.Writer, session *game.Session) *Console {
	return &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		session: session,
	}
}

// Run processes commands until "exit" or the end of input.
func (c *Console) Run(ctx context.Context) error {
	for {
		line, err := c.prompt("Input command: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "exit" {
			return nil
		}

		cmd, ok := parseStart(line)
		if ok {
			ok = c.playable(cmd.First) && c.playable(cmd.Second)
		}
		if !ok {
			c.println("Bad parameters!")
			continue
		}

		err = c.Play(ctx, cmd.First, cmd.Second)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func parseStart(line string) (StartCommand, bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return StartCommand{}, false
	}
	cmd := StartCommand{Action: fields[0], First: fields[1], Second: fields[2]}
	if err := validator.GetValidator().Struct(cmd); err != nil {
		return StartCommand{}, false
	}
	return cmd, true
}

// playable reports whether participant can play on the session's grid.
func (c *Console) playable(participant string) bool {
	if participant == validator.ParticipantUser {
		return true
	}
	return bot.Difficulty(participant).CheckSide(c.session.Grid().SideLength()) == nil
}

// Play runs one game from an empty grid. first plays the first symbol and
// second the other; each is "user" or a bot difficulty.
func (c *Console) Play(ctx context.Context, first, second string) error {
	players := c.session.Players()
	participants := map[grid.Symbol]string{
		players.First():  first,
		players.Second(): second,
	}
	slog.DebugContext(ctx, "game started", "player.first", first, "player.second", second)

	c.session.Reset()
	c.show()
	for {
		if done, outcome := c.session.IsTerminal(); done {
			c.println(outcome.String())
			slog.DebugContext(ctx, "game finished", "game.outcome", outcome.String(), "grid.cells", c.session.Grid().String())
			return nil
		}

		symbol, err := c.session.SymbolToMove()
		if err != nil {
			return err
		}

		participant := participants[symbol]
		if participant == validator.ParticipantUser {
			if err := c.userMove(symbol); err != nil {
				return err
			}
		} else {
			difficulty, err := bot.ParseDifficulty(participant)
			if err != nil {
				return err
			}
			c.println(fmt.Sprintf("Making move level %q", participant))
			if _, err := c.session.BotMove(ctx, difficulty, symbol); err != nil {
				return err
			}
		}
		c.show()
	}
}

// userMove prompts until the user enters a legal move and applies it.
func (c *Console) userMove(symbol grid.Symbol) error {
	side := c.session.Grid().SideLength()
	for {
		line, err := c.prompt("Enter the coordinates: ")
		if err != nil {
			return err
		}

		x, y, ok := parseCoordinates(line)
		if !ok {
			c.println("You should enter numbers!")
			continue
		}

		err = c.session.ValidateMove(x, y)
		switch {
		case errors.Is(err, grid.ErrOutOfRange):
			c.println(fmt.Sprintf("Coordinates should be from 1 to %d!", side))
			continue
		case errors.Is(err, game.ErrOccupied):
			c.println("This cell is occupied! Choose another one!")
			continue
		case err != nil:
			return err
		}

		return c.session.ApplyMove(x, y, symbol)
	}
}

// parseCoordinates accepts "x y" with both values integers, or two digits
// written together as in "13".
func parseCoordinates(line string) (x, y int, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 1 {
		if runes := []rune(fields[0]); len(runes) == 2 {
			fields = []string{string(runes[0]), string(runes[1])}
		}
	}
	if len(fields) != 2 {
		return 0, 0, false
	}
	x, errX := strconv.Atoi(fields[0])
	y, errY := strconv.Atoi(fields[1])
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return x, y, true
}

func (c *Console) prompt(text string) (string, error) {
	fmt.Fprint(c.out, text)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

func (c *Console) show() {
	c.println(c.session.Grid().Render())
}

func (c *Console) println(text string) {
	fmt.Fprintln(c.out, text)
}
