package validator

import (
	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/grid"

	"github.com/go-playground/validator/v10"
)

// ParticipantUser marks a human participant in start commands.
const ParticipantUser = "user"

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	if err := Register(validate); err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}

// Register adds the game specific tags to v:
//
//	difficulty  - easy, medium or hard
//	participant - user or a difficulty
//	symbol      - a single character usable as a player mark
func Register(v *validator.Validate) error {
	validations := map[string]validator.Func{
		"difficulty":  isDifficulty,
		"participant": isParticipant,
		"symbol":      isSymbol,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isDifficulty(fl validator.FieldLevel) bool {
	return bot.Difficulty(fl.Field().String()).Valid()
}

func isParticipant(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == ParticipantUser || bot.Difficulty(s).Valid()
}

func isSymbol(fl validator.FieldLevel) bool {
	r := []rune(fl.Field().String())
	return len(r) == 1 && r[0] != grid.EmptyMarker && r[0] != ' '
}
