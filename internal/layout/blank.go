package layout

// NewBlankPage returns a page with no content and a box of exactly
// width x height.
func NewBlankPage(width, height float64) (Page, error) {
	return NewPage(Box{Width: width, Height: height})
}

// NewBlankLike returns a blank page with the same box as p.
func NewBlankLike(p Page) (Page, error) {
	return NewBlankPage(p.box.Width, p.box.Height)
}
