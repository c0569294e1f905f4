// meta/meta.go
package meta

// BOARD_SIZE defines the default board size.
const BOARD_SIZE = 15

// MIN_BOARD_SIZE and MAX_BOARD_SIZE bound the accepted board sizes.
const MIN_BOARD_SIZE = 5
const MAX_BOARD_SIZE = 25

// WIN_LENGTH defines how many stones in a row win the game.
const WIN_LENGTH = 5

// NEIGHBOR_RADIUS defines the Chebyshev radius around stones that candidate moves are drawn from.
const NEIGHBOR_RADIUS = 1

// MAX_TURNS caps the number of moves an engine game may run for.
const MAX_TURNS = MAX_BOARD_SIZE * MAX_BOARD_SIZE
