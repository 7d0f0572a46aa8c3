// meta/meta.go
package meta

// BOARD_SIZE defines the default board size.
const BOARD_SIZE = 8

// GO_ROUTINES defines the number of goroutines running rollouts.
const GO_ROUTINES = 8

// REPEAT defines the number of rollouts per candidate move.
const REPEAT = 100
