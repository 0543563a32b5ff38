package layout

// Translation is one entry in a stream's transform log. Offsets are in a
// y-up frame whose origin is the top-left corner of the page the stream is
// drawn on, so moving content down the page is a negative DY.
type Translation struct {
	DX float64
	DY float64
}

// Source identifies the page a content stream was read from.
type Source struct {
	Path       string
	PageNumber int // 1-based
}

// Stream is an opaque content stream. Drawing instructions are never
// interpreted; only the transforms applied to them are recorded.
type Stream struct {
	Source     Source
	Box        Box
	Length     int
	Digest     string
	Transforms []Translation
}

// Offset sums the transform log.
func (s Stream) Offset() Translation {
	var off Translation
	for _, t := range s.Transforms {
		off.DX += t.DX
		off.DY += t.DY
	}
	return off
}

func (s Stream) clone() Stream {
	if s.Transforms != nil {
		s.Transforms = append([]Translation(nil), s.Transforms...)
	}
	return s
}

func (s Stream) translated(t Translation) Stream {
	out := s
	out.Transforms = make([]Translation, 0, len(s.Transforms)+1)
	out.Transforms = append(out.Transforms, s.Transforms...)
	out.Transforms = append(out.Transforms, t)
	return out
}

// Region is the area one input page occupies inside a composed page.
type Region struct {
	Offset Translation
	Box    Box
	Blank  bool
}

// Rect returns the region as x, y, width, height in a top-left, y-down frame,
// the convention used by gofpdf and by rendered page images.
func (r Region) Rect() (x, y, w, h float64) {
	return r.Offset.DX, -r.Offset.DY, r.Box.Width, r.Box.Height
}

// Page is immutable: accessors hand out copies and composition always
// builds a new Page.
type Page struct {
	box     Box
	streams []Stream
	regions []Region
}

// NewPage builds a page of the given box drawing the given streams unshifted.
func NewPage(box Box, streams ...Stream) (Page, error) {
	if err := box.validate(); err != nil {
		return Page{}, err
	}
	p := Page{
		box:     box,
		streams: make([]Stream, 0, len(streams)),
		regions: []Region{{Box: box, Blank: len(streams) == 0}},
	}
	for _, s := range streams {
		p.streams = append(p.streams, s.clone())
	}
	return p, nil
}

func (p Page) Box() Box         { return p.box }
func (p Page) Width() float64   { return p.box.Width }
func (p Page) Height() float64  { return p.box.Height }
func (p Page) IsBlank() bool    { return len(p.streams) == 0 }
func (p Page) StreamCount() int { return len(p.streams) }

func (p Page) Streams() []Stream {
	out := make([]Stream, len(p.streams))
	for i, s := range p.streams {
		out[i] = s.clone()
	}
	return out
}

func (p Page) Regions() []Region {
	return append([]Region(nil), p.regions...)
}

// Metadata is the document information carried from the source document to
// the output.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
}

// Document is an ordered sequence of pages.
type Document struct {
	Source   string
	Metadata Metadata
	pages    []Page
}

func NewDocument(source string, pages ...Page) *Document {
	return &Document{
		Source: source,
		pages:  append([]Page(nil), pages...),
	}
}

func (d *Document) Append(p Page) {
	d.pages = append(d.pages, p)
}

func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.pages)
}

// Page returns the page at the 0-based index i.
func (d *Document) Page(i int) Page {
	return d.pages[i]
}

func (d *Document) Pages() []Page {
	if d == nil {
		return nil
	}
	return append([]Page(nil), d.pages...)
}
