package mines

import (
	"fmt"
	"strings"
)

// String draws the board as text, one row per line, columns separated by
// spaces. Hidden mines are never shown.
func (b *Board) String() string {
	if b.cells == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprint(&sb, "   ")
	for x := range b.columns {
		fmt.Fprintf(&sb, "%d ", x%10)
	}
	fmt.Fprint(&sb, "\n")
	for y := range b.rows {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := range b.columns {
			fmt.Fprint(&sb, b.cells[b.index(x, y)].String()+" ")
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
