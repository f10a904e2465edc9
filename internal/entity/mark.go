package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Mark is the content of a single board cell.
type Mark uint8

const (
	Empty Mark = iota
	A
	B
)

// IsPlayer reports whether the mark belongs to one of the two players.
func (m Mark) IsPlayer() bool {
	return m == A || m == B
}

// Opponent - returns the other player's mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case A:
		return B
	case B:
		return A
	default:
		return Empty
	}
}

// Symbol - returns the symbol the mark is drawn with. A always moves first and is drawn as X.
func (m Mark) Symbol() string {
	switch m {
	case A:
		return "X"
	case B:
		return "O"
	default:
		return ""
	}
}

func (m Mark) String() string {
	switch m {
	case A:
		return "A"
	case B:
		return "B"
	default:
		return "empty"
	}
}

func (m Mark) MarshalText() ([]byte, error) {
	switch m {
	case A, B:
		return []byte(m.String()), nil
	case Empty:
		return []byte{}, nil
	default:
		return nil, fmt.Errorf("%w: mark %d", apperror.ErrInvalidArgument, uint8(m))
	}
}

func (m *Mark) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = Empty
		return nil
	}

	parsed, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// ParseMark - accepts the player names (A, B), their symbols (X, O) and turn numbers (1, 2).
func ParseMark(value string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "A", "X", "1":
		return A, nil
	case "B", "O", "2":
		return B, nil
	default:
		return Empty, fmt.Errorf("%w: unknown mark %q", apperror.ErrInvalidArgument, value)
	}
}
