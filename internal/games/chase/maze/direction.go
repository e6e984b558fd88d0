package maze

// Direction is one of the four grid headings. DirNone marks an unset heading.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four headings in their fixed enumeration order.
// Visibility checks and tie-breaks walk this order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Delta returns the unit vector of the heading in screen coordinates (y grows down).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Angle returns the canonical heading angle in degrees:
// Right=0, Down=90, Left=180, Up=-90.
func (d Direction) Angle() float64 {
	switch d {
	case DirUp:
		return -90
	case DirDown:
		return 90
	case DirLeft:
		return 180
	default:
		return 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}
