package charts

import (
	"fmt"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

var palette = []string{
	"#4C72B0", "#DD8452", "#55A868", "#C44E52", "#8172B3",
	"#937860", "#DA8BC3", "#8C8C8C", "#CCB974", "#64B5CD",
}

// Renderer draws PNG charts. Without a TrueType font it falls back to the
// fixed-size bitmap face built into gg.
type Renderer struct {
	font *truetype.Font
}

func NewRenderer(fontPath string) (*Renderer, error) {
	if fontPath == "" {
		return &Renderer{}, nil
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read chart font: %w", err)
	}
	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse chart font: %w", err)
	}
	return &Renderer{font: parsed}, nil
}

func (r *Renderer) setFont(dc *gg.Context, size float64) {
	if r.font == nil {
		return
	}
	dc.SetFontFace(truetype.NewFace(r.font, &truetype.Options{Size: size, Hinting: font.HintingFull}))
}

// panel is one plotting area of a canvas.
type panel struct {
	r          *Renderer
	dc         *gg.Context
	x, y, w, h float64
}

func (r *Renderer) canvas(width, height int) *gg.Context {
	dc := gg.NewContext(width, height)
	dc.SetHexColor("#FFFFFF")
	dc.Clear()
	return dc
}

func (r *Renderer) panel(dc *gg.Context, x, y, w, h float64) panel {
	return panel{r: r, dc: dc, x: x, y: y, w: w, h: h}
}

const (
	titleHeight = 36.0
	marginLeft  = 70.0
	marginRight = 20.0
	axisHeight  = 48.0
)

// plotArea is the region inside the axes.
func (p panel) plotArea() (x, y, w, h float64) {
	return p.x + marginLeft, p.y + titleHeight, p.w - marginLeft - marginRight, p.h - titleHeight - axisHeight
}

func (p panel) title(text string) {
	p.r.setFont(p.dc, 16)
	p.dc.SetHexColor("#222222")
	p.dc.DrawStringAnchored(text, p.x+p.w/2, p.y+titleHeight/2, 0.5, 0.5)
}

func (p panel) message(text string) {
	p.r.setFont(p.dc, 12)
	p.dc.SetHexColor("#888888")
	p.dc.DrawStringAnchored(text, p.x+p.w/2, p.y+p.h/2, 0.5, 0.5)
}

// axes draws the frame, horizontal grid lines and y tick labels for [0, max].
func (p panel) axes(max float64, format func(float64) string) {
	px, py, pw, ph := p.plotArea()
	p.r.setFont(p.dc, 10)
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		v := max * float64(i) / ticks
		ty := py + ph - ph*float64(i)/ticks
		p.dc.SetHexColor("#E5E5E5")
		p.dc.SetLineWidth(1)
		p.dc.DrawLine(px, ty, px+pw, ty)
		p.dc.Stroke()
		p.dc.SetHexColor("#444444")
		p.dc.DrawStringAnchored(format(v), px-6, ty, 1, 0.5)
	}
	p.dc.SetHexColor("#444444")
	p.dc.SetLineWidth(1.5)
	p.dc.DrawLine(px, py, px, py+ph)
	p.dc.DrawLine(px, py+ph, px+pw, py+ph)
	p.dc.Stroke()
}

func (p panel) xLabels(labels []string, centers []float64) {
	_, py, _, ph := p.plotArea()
	p.r.setFont(p.dc, 10)
	p.dc.SetHexColor("#444444")
	step := 1
	if len(labels) > 12 {
		step = int(math.Ceil(float64(len(labels)) / 12))
	}
	for i := 0; i < len(labels); i += step {
		p.dc.DrawStringAnchored(shorten(labels[i], 14), centers[i], py+ph+14, 0.5, 0.5)
	}
}

func (p panel) bars(labels []string, values []float64, format func(float64) string) {
	max := niceMax(values)
	p.axes(max, format)
	px, py, pw, ph := p.plotArea()
	slot := pw / float64(len(values))
	centers := make([]float64, len(values))
	p.r.setFont(p.dc, 10)
	for i, v := range values {
		bh := ph * v / max
		bx := px + slot*float64(i) + slot*0.15
		p.dc.SetHexColor(palette[i%len(palette)])
		p.dc.DrawRectangle(bx, py+ph-bh, slot*0.7, bh)
		p.dc.Fill()
		p.dc.SetHexColor("#222222")
		p.dc.DrawStringAnchored(format(v), bx+slot*0.35, py+ph-bh-8, 0.5, 0.5)
		centers[i] = bx + slot*0.35
	}
	p.xLabels(labels, centers)
}

type series struct {
	name   string
	values []float64
}

// lines plots each series against shared x labels; NaN values leave a gap.
func (p panel) lines(labels []string, data []series, min, max float64, format func(float64) string) {
	p.axesRange(min, max, format)
	px, py, pw, ph := p.plotArea()
	step := pw
	if len(labels) > 1 {
		step = pw / float64(len(labels)-1)
	}
	centers := make([]float64, len(labels))
	for i := range labels {
		centers[i] = px + step*float64(i)
		if len(labels) == 1 {
			centers[i] = px + pw/2
		}
	}
	for si, s := range data {
		p.dc.SetHexColor(palette[si%len(palette)])
		p.dc.SetLineWidth(2)
		drawing := false
		for i, v := range s.values {
			if math.IsNaN(v) {
				drawing = false
				continue
			}
			vy := py + ph - ph*(v-min)/(max-min)
			if drawing {
				p.dc.LineTo(centers[i], vy)
			} else {
				p.dc.MoveTo(centers[i], vy)
				drawing = true
			}
		}
		p.dc.Stroke()
		for i, v := range s.values {
			if math.IsNaN(v) {
				continue
			}
			p.dc.DrawCircle(centers[i], py+ph-ph*(v-min)/(max-min), 3)
			p.dc.Fill()
		}
	}
	p.xLabels(labels, centers)
	p.legend(data)
}

func (p panel) axesRange(min, max float64, format func(float64) string) {
	px, py, pw, ph := p.plotArea()
	p.r.setFont(p.dc, 10)
	const ticks = 4
	for i := 0; i <= ticks; i++ {
		v := min + (max-min)*float64(i)/ticks
		ty := py + ph - ph*float64(i)/ticks
		p.dc.SetHexColor("#E5E5E5")
		p.dc.SetLineWidth(1)
		p.dc.DrawLine(px, ty, px+pw, ty)
		p.dc.Stroke()
		p.dc.SetHexColor("#444444")
		p.dc.DrawStringAnchored(format(v), px-6, ty, 1, 0.5)
	}
	p.dc.SetLineWidth(1.5)
	p.dc.DrawLine(px, py, px, py+ph)
	p.dc.DrawLine(px, py+ph, px+pw, py+ph)
	p.dc.Stroke()
}

func (p panel) legend(data []series) {
	if len(data) < 2 {
		return
	}
	px, py, pw, _ := p.plotArea()
	p.r.setFont(p.dc, 10)
	lx := px + pw - 120
	for i, s := range data {
		ly := py + 8 + float64(i)*14
		p.dc.SetHexColor(palette[i%len(palette)])
		p.dc.DrawRectangle(lx, ly-4, 10, 8)
		p.dc.Fill()
		p.dc.SetHexColor("#222222")
		p.dc.DrawStringAnchored(shorten(s.name, 16), lx+14, ly, 0, 0.5)
	}
}

// histogram buckets values into bins equal-width buckets and marks the mean.
func (p panel) histogram(values []float64, bins int, format func(float64) string, meanValue float64) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	width := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}

	max := niceMax(counts)
	p.axes(max, func(v float64) string { return fmt.Sprintf("%.0f", v) })
	px, py, pw, ph := p.plotArea()
	slot := pw / float64(bins)
	for i, c := range counts {
		bh := ph * c / max
		p.dc.SetHexColor(palette[2])
		p.dc.DrawRectangle(px+slot*float64(i)+1, py+ph-bh, slot-2, bh)
		p.dc.Fill()
	}

	mx := px + pw*(meanValue-lo)/(hi-lo)
	p.dc.SetHexColor("#C44E52")
	p.dc.SetLineWidth(2)
	p.dc.DrawLine(mx, py, mx, py+ph)
	p.dc.Stroke()

	p.r.setFont(p.dc, 10)
	p.dc.SetHexColor("#444444")
	p.dc.DrawStringAnchored(format(lo), px, py+ph+14, 0, 0.5)
	p.dc.DrawStringAnchored(format(hi), px+pw, py+ph+14, 1, 0.5)
	p.dc.SetHexColor("#C44E52")
	p.dc.DrawStringAnchored("mean "+format(meanValue), mx, py-6, 0.5, 0.5)
}

// pie draws wedges proportional to values with a label list beside them.
func (p panel) pie(labels []string, values []float64) {
	total := 0.0
	for _, v := range values {
		total += v
	}
	cx := p.x + p.w*0.35
	cy := p.y + titleHeight + (p.h-titleHeight)/2
	radius := math.Min(p.w*0.3, (p.h-titleHeight)/2-10)
	angle := -math.Pi / 2
	p.r.setFont(p.dc, 10)
	for i, v := range values {
		sweep := 2 * math.Pi * v / total
		p.dc.SetHexColor(palette[i%len(palette)])
		p.dc.NewSubPath()
		p.dc.MoveTo(cx, cy)
		p.dc.DrawArc(cx, cy, radius, angle, angle+sweep)
		p.dc.ClosePath()
		p.dc.Fill()
		angle += sweep

		ly := p.y + titleHeight + 12 + float64(i)*16
		lx := p.x + p.w*0.7
		p.dc.DrawRectangle(lx, ly-5, 10, 10)
		p.dc.Fill()
		p.dc.SetHexColor("#222222")
		p.dc.DrawStringAnchored(fmt.Sprintf("%s %.1f%%", shorten(labels[i], 14), 100*v/total), lx+14, ly, 0, 0.5)
	}
}

// hbars draws horizontal bars, used for ranked lists with long labels.
func (p panel) hbars(labels []string, values []float64, max float64, format func(float64) string) {
	top := p.y + titleHeight
	rowH := (p.h - titleHeight - 10) / float64(len(values))
	labelW := p.w * 0.35
	barW := p.w - labelW - 60
	p.r.setFont(p.dc, 10)
	for i, v := range values {
		ry := top + rowH*float64(i)
		bw := barW * v / max
		p.dc.SetHexColor("#222222")
		p.dc.DrawStringAnchored(shorten(labels[i], 22), p.x+labelW-6, ry+rowH/2, 1, 0.5)
		p.dc.SetHexColor(palette[i%len(palette)])
		p.dc.DrawRectangle(p.x+labelW, ry+rowH*0.15, bw, rowH*0.7)
		p.dc.Fill()
		p.dc.SetHexColor("#222222")
		p.dc.DrawStringAnchored(format(v), p.x+labelW+bw+4, ry+rowH/2, 0, 0.5)
	}
}

// niceMax rounds the largest value up to a readable axis bound.
func niceMax(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		max = math.Max(max, v)
	}
	if max <= 0 {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(max)))
	for _, step := range []float64{1, 2, 2.5, 5, 10} {
		if bound := step * magnitude; bound >= max*1.05 {
			return bound
		}
	}
	return 10 * magnitude
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-2]) + ".."
}

func money(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fk", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func count(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func score(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
