package layout

import "fmt"

// Compose returns a new page holding base at the origin and addition next to
// it. RightOf widens the page by addition's width and keeps base's height;
// Below keeps base's width and adds addition's height underneath. Mismatched
// cross-axis sizes are not an error: the result keeps base's cross-axis
// extent and any uncovered area stays empty.
//
// Regions of composed inputs are carried forward, so the result lists every
// leaf region in page coordinates. Neither input is modified. Compose panics
// on a Placement other than RightOf or Below.
func Compose(base, addition Page, placement Placement) Page {
	var (
		box    Box
		offset Translation
	)
	switch placement {
	case RightOf:
		box = Box{Width: base.box.Width + addition.box.Width, Height: base.box.Height}
		offset = Translation{DX: base.box.Width}
	case Below:
		box = Box{Width: base.box.Width, Height: base.box.Height + addition.box.Height}
		offset = Translation{DY: -base.box.Height}
	default:
		panic(fmt.Sprintf("layout: unknown placement %d", int(placement)))
	}

	streams := make([]Stream, 0, len(base.streams)+len(addition.streams))
	for _, s := range base.streams {
		streams = append(streams, s.clone())
	}
	for _, s := range addition.streams {
		streams = append(streams, s.translated(offset))
	}

	baseRegions := base.leafRegions()
	addRegions := addition.leafRegions()
	regions := make([]Region, 0, len(baseRegions)+len(addRegions))
	regions = append(regions, baseRegions...)
	for _, r := range addRegions {
		r.Offset = Translation{DX: r.Offset.DX + offset.DX, DY: r.Offset.DY + offset.DY}
		regions = append(regions, r)
	}

	return Page{
		box:     box,
		streams: streams,
		regions: regions,
	}
}

// leafRegions falls back to the whole page for zero-value pages, which carry
// no regions.
func (p Page) leafRegions() []Region {
	if len(p.regions) == 0 {
		return []Region{{Box: p.box, Blank: p.IsBlank()}}
	}
	return p.Regions()
}
