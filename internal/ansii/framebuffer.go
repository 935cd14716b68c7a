package ansii

// Framebuffer is a fixed-size grid of palette indices.
// Drawing outside the grid is clipped.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

func (f *Framebuffer) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0
	}
	return f.Pix[y*f.Width+x]
}

func (f *Framebuffer) Clear(c uint8) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}

func (f *Framebuffer) FillRect(c uint8, x, y, w, h int) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, f.Width), min(y+h, f.Height)
	for row := y0; row < y1; row++ {
		line := f.Pix[row*f.Width : (row+1)*f.Width]
		for col := x0; col < x1; col++ {
			line[col] = c
		}
	}
}

// FillCircle sets every pixel whose centre offset (dx, dy) satisfies
// dx*dx + dy*dy <= r*r.
func (f *Framebuffer) FillCircle(c uint8, cx, cy, r int) {
	if r < 0 {
		return
	}
	for dy := -r; dy <= r; dy++ {
		y := cy + dy
		if y < 0 || y >= f.Height {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			x := cx + dx
			if x < 0 || x >= f.Width || dx*dx+dy*dy > r*r {
				continue
			}
			f.Pix[y*f.Width+x] = c
		}
	}
}

// AppendFrame appends the escape sequence that paints f scaled onto a
// cols x rows cell grid, two vertical pixels per cell. lut maps palette
// indices to xterm-256 colour codes.
func AppendFrame(dst []byte, f *Framebuffer, cols, rows int, lut *[256]uint8) []byte {
	dst = append(dst, home...)
	if cols <= 0 || rows <= 0 {
		return dst
	}

	sub := rows * 2
	for row := 0; row < rows; row++ {
		topY := (row * 2) * f.Height / sub
		bottomY := (row*2 + 1) * f.Height / sub

		fg, bg := -1, -1
		for col := 0; col < cols; col++ {
			x := col * f.Width / cols
			top := int(lut[f.At(x, topY)])
			bottom := int(lut[f.At(x, bottomY)])
			if top != fg || bottom != bg {
				dst = appendColors(dst, uint8(top), uint8(bottom))
				fg, bg = top, bottom
			}
			dst = append(dst, halfBlock...)
		}
		dst = append(dst, reset...)
		if row < rows-1 {
			dst = append(dst, '\r', '\n')
		}
	}
	return dst
}
