package chess

import "errors"

// Rejection reasons returned by Position.Apply. Callers should test with
// errors.Is since the returned errors carry the offending move.
var (
	ErrOutOfBounds      = errors.New("chess: square off the board")
	ErrNoPiece          = errors.New("chess: no piece on origin square")
	ErrWrongTurn        = errors.New("chess: piece does not belong to the side to move")
	ErrIllegalMove      = errors.New("chess: illegal move")
	ErrInvalidPromotion = errors.New("chess: invalid promotion")
	ErrGameOver         = errors.New("chess: game is over")
)

// ErrDrawNotClaimable is returned by Game.Draw when the position does not
// allow the requested draw claim.
var ErrDrawNotClaimable = errors.New("chess: draw cannot be claimed")
