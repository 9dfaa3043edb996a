package game

import "fmt"

// Direction is one of the eight compass directions, or None.
type Direction int

const (
	None Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Directions lists the eight movement directions in clockwise order.
var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var directionNames = map[Direction]string{
	None:      "none",
	North:     "north",
	NorthEast: "northeast",
	East:      "east",
	SouthEast: "southeast",
	South:     "south",
	SouthWest: "southwest",
	West:      "west",
	NorthWest: "northwest",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "none"
}

// ParseDirection maps a direction name to its Direction. Agent programs pass
// directions as strings, so unknown names are an error rather than a panic.
func ParseDirection(name string) (Direction, error) {
	for d, n := range directionNames {
		if n == name {
			return d, nil
		}
	}
	return None, fmt.Errorf("unknown direction %q", name)
}

// RotateLeft returns the direction 45 degrees counterclockwise.
func (d Direction) RotateLeft() Direction {
	if d == None {
		return None
	}
	if d == North {
		return NorthWest
	}
	return d - 1
}

// RotateRight returns the direction 45 degrees clockwise.
func (d Direction) RotateRight() Direction {
	if d == None {
		return None
	}
	if d == NorthWest {
		return North
	}
	return d + 1
}

// Opposite returns the direction 180 degrees away.
func (d Direction) Opposite() Direction {
	return d.RotateRight().RotateRight().RotateRight().RotateRight()
}

func (d Direction) offsets() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	case West:
		return -1, 0
	case NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}
