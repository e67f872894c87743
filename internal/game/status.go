package game

// Status describes the state of a game from the perspective of the side
// to move.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCheck      Status = "check"
	StatusCheckmate  Status = "checkmate"
	StatusStalemate  Status = "stalemate"
	StatusDraw       Status = "draw"
)

// Status classifies the current position. Terminal states win: a position
// that is both drawn and in check reports the draw.
func (g *Game) Status() Status {
	switch {
	case g.pos.IsCheckmate():
		return StatusCheckmate
	case g.pos.IsStalemate():
		return StatusStalemate
	case g.IsDraw():
		return StatusDraw
	case g.pos.InCheck():
		return StatusCheck
	default:
		return StatusInProgress
	}
}
