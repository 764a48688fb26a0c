package bitmap

// Pixels is copy-on-write premultiplied ARGB32 storage. Clones share the
// same backing array until one of them asks for mutable access.
//
// Pixels is not safe for concurrent use.
type Pixels struct {
	buf *pixelBuffer
}

type pixelBuffer struct {
	pix    []uint32
	owners int
}

// NewPixels allocates n transparent pixels.
func NewPixels(n int) *Pixels {
	return PixelsOf(make([]uint32, n))
}

// PixelsOf takes ownership of pix.
func PixelsOf(pix []uint32) *Pixels {
	return &Pixels{buf: &pixelBuffer{pix: pix, owners: 1}}
}

// Clone returns a new owner of the same storage. No pixels are copied.
func (p *Pixels) Clone() *Pixels {
	p.buf.owners++
	return &Pixels{buf: p.buf}
}

// Shared reports whether another owner references the storage.
func (p *Pixels) Shared() bool { return p.buf.owners > 1 }

// Len returns the number of pixels.
func (p *Pixels) Len() int { return len(p.buf.pix) }

// Pix returns the pixels for reading. The slice must not be modified.
func (p *Pixels) Pix() []uint32 { return p.buf.pix }

// MakeUnique returns the pixels for writing, detaching them from other
// owners first by copying when the storage is shared.
func (p *Pixels) MakeUnique() []uint32 {
	if p.buf.owners > 1 {
		p.buf.owners--
		pix := make([]uint32, len(p.buf.pix))
		copy(pix, p.buf.pix)
		p.buf = &pixelBuffer{pix: pix, owners: 1}
	}
	return p.buf.pix
}

// Release drops this owner. p must not be used afterwards.
func (p *Pixels) Release() {
	if p.buf == nil {
		return
	}
	p.buf.owners--
	p.buf = nil
}
