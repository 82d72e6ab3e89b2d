// Package letter implements the tic-tac-toe game that guards the secret
// letter: three wins against the computer unlock it for good.
package letter

import "strings"

// Mark is the content of a board cell.
type Mark int

const (
	Empty Mark = iota
	Player
	Opponent
)

func (m Mark) String() string {
	switch m {
	case Player:
		return "X"
	case Opponent:
		return "O"
	default:
		return " "
	}
}

// Board is a 3x3 grid in row-major order.
type Board [9]Mark

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner returns the mark holding a full line, or Empty.
func (b Board) Winner() Mark {
	for _, l := range lines {
		if m := b[l[0]]; m != Empty && m == b[l[1]] && m == b[l[2]] {
			return m
		}
	}
	return Empty
}

func (b Board) Full() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}

// EmptyCells returns the indices of empty cells in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, len(b))
	for i, m := range b {
		if m == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

func (b Board) String() string {
	var sb strings.Builder
	for row := range 3 {
		if row > 0 {
			sb.WriteString("\n")
		}
		for col := range 3 {
			sb.WriteString(b[row*3+col].String())
		}
	}
	return sb.String()
}
