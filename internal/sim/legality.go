package sim

// IsMoveAllowed decides whether the block at (x, y) may move one cell in dir.
//
// The input hole (moving down) and the chute slots are always open. Otherwise
// the destination must lie inside the field, be free, and not cross the saw
// blade along its row.
func IsMoveAllowed(geom Geometry, snap CollisionSnapshot, x, y int, dir Direction) bool {
	dx, dy := dir.Delta()
	x += dx
	y += dy

	inInputArea := y >= geom.Height && x < geom.HoleSize && dir == DirDown
	inOutputArea := geom.IsOutputSlot(x, y)

	clippingBlocks := !geom.InBounds(x, y) || snap.Field.Occupied(x, y)
	clippingBlade := crossesBlade(snap, x, y, dir)

	return inInputArea || inOutputArea || !(clippingBlocks || clippingBlade)
}

// crossesBlade reports whether arriving at (x, y) by moving in dir passes
// through the saw blade along its row.
func crossesBlade(snap CollisionSnapshot, x, y int, dir Direction) bool {
	return snap.HasSaw && y == snap.LeftOfSawBlade.Y &&
		((dir == DirLeft && x == snap.LeftOfSawBlade.X) ||
			(dir == DirRight && x == snap.RightOfSawBlade.X))
}

// AllowedMoves folds IsMoveAllowed over every block of a figure.
// A direction is allowed only if every block may move that way.
// The snapshot must have been built with the figure excluded.
func AllowedMoves(geom Geometry, snap CollisionSnapshot, e Entity) Moves {
	moves := AllMoves()
	for _, c := range AbsoluteCells(e) {
		for _, d := range AllDirections {
			if moves.Allows(d) && !IsMoveAllowed(geom, snap, c.X, c.Y, d) {
				moves.deny(d)
			}
		}
	}
	return moves
}
