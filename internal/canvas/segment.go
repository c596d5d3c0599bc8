package canvas

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// DrawSegment rasterises a round-capped line from one point to another.
// The brush composites the pen colour over the buffer; the eraser cuts the
// covered area out of the buffer and ignores the colour.
func (s *Surface) DrawSegment(from, to image.Point, pen Pen) {
	width := pen.Width
	if width < 1 {
		width = 1
	}
	r := float64(width) / 2
	pad := int(math.Ceil(r)) + 1
	box := image.Rect(from.X, from.Y, to.X, to.Y).Canon()
	box = image.Rect(box.Min.X-pad, box.Min.Y-pad, box.Max.X+pad+1, box.Max.Y+pad+1)
	clip := box.Intersect(s.img.Bounds())
	if clip.Empty() {
		return
	}

	mask := capsuleMask(clip, from, to, r)
	switch pen.Tool {
	case ToolEraser:
		eraseMask(s.img, clip, mask)
	default:
		draw.DrawMask(s.img, clip, image.NewUniform(pen.Color), image.Point{}, mask, clip.Min, draw.Over)
	}
}

// capsuleMask returns coverage within box for the stadium shape around the
// segment a-b, which is what a stroked line with round caps covers. Pixel
// centres sit on half coordinates, so points are shifted by 0.5. The segment
// is trimmed to box grown by the radius first, so far endpoints cost nothing.
func capsuleMask(box image.Rectangle, a, b image.Point, r float64) *image.Alpha {
	mask := image.NewAlpha(box)
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	ax := float64(a.X-box.Min.X) + 0.5
	ay := float64(a.Y-box.Min.Y) + 0.5
	bx := float64(b.X-box.Min.X) + 0.5
	by := float64(b.Y-box.Min.Y) + 0.5

	steps := arcSteps(r)
	if a == b {
		for i := 0; i <= 2*steps; i++ {
			phi := float64(i) * math.Pi / float64(steps)
			plot(z, i == 0, ax+r*math.Cos(phi), ay+r*math.Sin(phi))
		}
	} else {
		angle := math.Atan2(by-ay, bx-ax)
		m := r + 2
		var ok bool
		ax, ay, bx, by, ok = clipSegment(ax, ay, bx, by, -m, -m, float64(box.Dx())+m, float64(box.Dy())+m)
		if !ok {
			return mask
		}
		// Half circle around b facing forward, then around a facing back.
		for i := 0; i <= steps; i++ {
			phi := angle - math.Pi/2 + float64(i)*math.Pi/float64(steps)
			plot(z, i == 0, bx+r*math.Cos(phi), by+r*math.Sin(phi))
		}
		for i := 0; i <= steps; i++ {
			phi := angle + math.Pi/2 + float64(i)*math.Pi/float64(steps)
			plot(z, false, ax+r*math.Cos(phi), ay+r*math.Sin(phi))
		}
	}
	z.ClosePath()

	z.DrawOp = draw.Src
	z.Draw(mask, box, image.Opaque, image.Point{})
	return mask
}

// clipSegment trims the segment to the rectangle (x0,y0)-(x1,y1) with the
// Liang-Barsky test. It reports false when the segment misses the rectangle.
func clipSegment(ax, ay, bx, by, x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	dx, dy := bx-ax, by-ay
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, ax - x0},
		{dx, x1 - ax},
		{-dy, ay - y0},
		{dy, y1 - ay},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return ax + t0*dx, ay + t0*dy, ax + t1*dx, ay + t1*dy, true
}

func plot(z *vector.Rasterizer, first bool, x, y float64) {
	if first {
		z.MoveTo(float32(x), float32(y))
		return
	}
	z.LineTo(float32(x), float32(y))
}

func arcSteps(r float64) int {
	n := int(math.Ceil(r * 2))
	if n < 8 {
		return 8
	}
	if n > 64 {
		return 64
	}
	return n
}

// eraseMask scales every premultiplied channel by the inverse coverage, the
// destination-out operator.
func eraseMask(dst *image.RGBA, r image.Rectangle, mask *image.Alpha) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m := uint32(mask.AlphaAt(x, y).A)
			if m == 0 {
				continue
			}
			keep := 255 - m
			i := dst.PixOffset(x, y)
			p := dst.Pix[i : i+4 : i+4]
			for c := range p {
				p[c] = uint8((uint32(p[c])*keep + 127) / 255)
			}
		}
	}
}
