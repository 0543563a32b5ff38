package layout

// Placement is where the second page goes relative to the first when two
// pages are composed.
type Placement int

const (
	RightOf Placement = iota
	Below
)

func (p Placement) String() string {
	switch p {
	case RightOf:
		return "right-of"
	case Below:
		return "below"
	default:
		return "unknown"
	}
}

// Route picks the composition axis for a page. Portrait pages (strictly
// taller than wide) grow to the right; landscape and square pages grow
// downwards.
func Route(p Page) Placement {
	return RouteBox(p.box)
}

func RouteBox(b Box) Placement {
	if b.Orientation() == Portrait {
		return RightOf
	}
	return Below
}
