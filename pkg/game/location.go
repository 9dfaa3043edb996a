package game

import "fmt"

// Location is a map coordinate.
type Location struct {
	X int
	Y int
}

func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.X, l.Y)
}

// Add returns the location one step in the given direction.
func (l Location) Add(d Direction) Location {
	dx, dy := d.offsets()
	return Location{X: l.X + dx, Y: l.Y + dy}
}

// DistanceSquaredTo returns the squared euclidean distance to other.
func (l Location) DistanceSquaredTo(other Location) int {
	dx := l.X - other.X
	dy := l.Y - other.Y
	return dx*dx + dy*dy
}

// DirectionTo returns the compass direction that points most directly from
// l toward other, or None if the locations are equal.
func (l Location) DirectionTo(other Location) Direction {
	dx := sign(other.X - l.X)
	dy := sign(other.Y - l.Y)
	switch {
	case dx == 0 && dy == 0:
		return None
	case dx == 0 && dy < 0:
		return North
	case dx > 0 && dy < 0:
		return NorthEast
	case dx > 0 && dy == 0:
		return East
	case dx > 0 && dy > 0:
		return SouthEast
	case dx == 0 && dy > 0:
		return South
	case dx < 0 && dy > 0:
		return SouthWest
	case dx < 0 && dy == 0:
		return West
	default:
		return NorthWest
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
