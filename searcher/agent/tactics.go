package agent

import "gomoku/game"

// winningCell returns the first empty cell, in row-major order, where a stone
// of player completes five in a row.
func winningCell(b *game.Board, player game.Player) (game.Coord, bool) {
	for _, cell := range b.EmptyCells() {
		if b.WinsAt(cell.Row, cell.Col, player) {
			return cell, true
		}
	}
	return game.Coord{}, false
}

// forkCell returns the first empty cell where a stone of player leaves at least
// two cells that would each complete five, so one block cannot stop both.
// A cell that wins on its own counts as well.
//
// Every empty cell is tried as the first stone and every remaining empty cell
// as the completion, with a local line check per completion. That costs
// O(A^2 * L) for A empty cells and win length L, which is fine up to the
// largest supported board but grows fast beyond it.
func forkCell(b *game.Board, player game.Player) (game.Coord, bool) {
	empty := b.EmptyCells()
	for _, cell := range empty {
		if b.WinsAt(cell.Row, cell.Col, player) {
			return cell, true
		}

		fork := false
		b.Probe(cell.Row, cell.Col, player, func() {
			threats := 0
			for _, next := range empty {
				if next == cell {
					continue
				}
				if b.WinsAt(next.Row, next.Col, player) {
					threats++
				}
				if threats >= 2 {
					fork = true
					return
				}
			}
		})
		if fork {
			return cell, true
		}
	}
	return game.Coord{}, false
}
