package entity

import "fmt"

// Size is the width and height of the board.
const Size = 3

// Move addresses a single cell.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) InBounds() bool {
	return InBounds(m.Row, m.Col)
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Board is the 3x3 grid, row-major.
type Board [Size][Size]Mark

// IsEmpty - true iff the cell is on the board and holds no mark.
func (that *Board) IsEmpty(row, col int) bool {
	return InBounds(row, col) && that[row][col] == Empty
}

func (that *Board) At(m Move) Mark {
	return that[m.Row][m.Col]
}

func (that *Board) Set(m Move, mark Mark) {
	that[m.Row][m.Col] = mark
}

// EmptyCells - returns the empty cells in row-major order.
func (that *Board) EmptyCells() []Move {
	cells := make([]Move, 0, Size*Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if that[row][col] == Empty {
				cells = append(cells, Move{Row: row, Col: col})
			}
		}
	}

	return cells
}

func (that *Board) HasEmpty() bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if that[row][col] == Empty {
				return true
			}
		}
	}

	return false
}

// Count - returns how many cells hold the mark.
func (that *Board) Count(mark Mark) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if that[row][col] == mark {
				n++
			}
		}
	}

	return n
}

// Swapped - returns a copy of the board with every A replaced by B and vice versa.
func (that *Board) Swapped() Board {
	var swapped Board
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			swapped[row][col] = that[row][col].Opponent()
		}
	}

	return swapped
}
