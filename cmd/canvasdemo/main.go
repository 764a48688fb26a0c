// Command canvasdemo renders a scene exercising the canvas 2D API to an
// image file.
package main

import (
	"flag"
	"log"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/raster"
	"github.com/gogpu/canvas/text"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "demo.png", "output file")
		mime    = flag.String("type", "image/png", "output MIME type")
		quality = flag.Int("quality", 90, "JPEG quality")
		p3      = flag.Bool("p3", false, "render in Display P3")
		verbose = flag.Bool("v", false, "log pipeline decisions")
	)
	flag.Parse()

	if *verbose {
		canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	space := color.PredefinedSRGB
	if *p3 {
		space = color.PredefinedDisplayP3
	}
	c, err := canvas.New(*width, *height, canvas.WithColorSpace(space))
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	if _, err := c.AddFontFace("Go", goregular.TTF); err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	if _, err := c.AddFontFace("Go Bold", gobold.TTF); err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	drawBackground(c)
	drawShapesDemo(c)
	drawTransformDemo(c)
	drawPathDemo(c)
	drawTextDemo(c)

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *output, err)
	}
	defer f.Close()
	if err := c.Encode(f, *mime, *quality); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d, %s)\n", *output, c.Width(), c.Height(), c.ColorSpace())
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func drawBackground(c *canvas.Canvas) {
	w, h := float64(c.Width()), float64(c.Height())
	g, err := c.CreateLinearGradient(0, 0, 0, h)
	must(err)
	must(g.AddColorStop(0, "oklch(35% 0.08 260)"))
	must(g.AddColorStop(1, "oklch(20% 0.05 300)"))
	c.SetFillStyle(g)
	c.FillRect(0, 0, w, h)
}

func drawShapesDemo(c *canvas.Canvas) {
	c.Save()
	defer c.Restore()

	// Overlapping circles with a shadow
	must(c.SetShadowColor("rgb(0 0 0 / 50%)"))
	c.SetShadowBlur(8)
	c.SetShadowOffsetY(4)
	c.SetGlobalCompositeOperation(canvas.Screen)
	for i, col := range []string{"color(display-p3 1 0.2 0.2 / 0.8)", "lab(80 -70 60 / 0.8)", "hwb(220 20% 0% / 0.8)"} {
		must(c.SetFillStyleString(col))
		c.BeginPath()
		must(c.Arc(150+float64(i%2)*50, 150+float64(i/2)*50, 60, 0, 2*math.Pi, false))
		c.Fill(raster.NonZero)
	}

	c.SetGlobalCompositeOperation(canvas.SourceOver)
	must(c.SetFillStyleString("gold"))
	c.BeginPath()
	must(c.RoundRect(350, 100, 120, 80, geom.Uniform(15)))
	c.Fill(raster.NonZero)

	must(c.SetShadowColor("transparent"))
	must(c.SetStrokeStyleString("white"))
	c.SetLineWidth(4)
	c.SetLineDash([]float64{12, 6})
	c.StrokeRect(350, 100, 120, 80)
}

func drawTransformDemo(c *canvas.Canvas) {
	g, err := c.CreateConicGradient(0, 0, 0)
	must(err)
	for i, col := range []string{"red", "yellow", "lime", "cyan", "blue", "magenta", "red"} {
		must(g.AddColorStop(float64(i)/6, col))
	}
	for i := range 8 {
		c.Save()
		c.Translate(600, 150)
		c.Rotate(float64(i) * math.Pi / 4)
		c.Translate(50, 0)
		c.SetFillStyle(g)
		c.FillRect(-20, -20, 40, 40)
		c.Restore()
	}
}

func drawPathDemo(c *canvas.Canvas) {
	c.Save()
	defer c.Restore()
	c.Translate(150, 400)

	must(c.SetStrokeStyleString("orange"))
	c.SetLineWidth(6)
	c.SetLineCap(raster.RoundCap)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.BezierCurveTo(50, -50, 100, 50, 150, 0)
	c.BezierCurveTo(200, -30, 250, 30, 300, 0)
	c.Stroke()

	// Blurred star
	c.Translate(400, 0)
	must(c.SetFilter("blur(2px) drop-shadow(4px 4px 2px black)"))
	must(c.SetFillStyleString("yellow"))
	c.BeginPath()
	const points = 5
	for i := range points * 2 {
		r := 60.0
		if i%2 == 1 {
			r = 30
		}
		a := float64(i)*math.Pi/points - math.Pi/2
		c.LineTo(r*math.Cos(a), r*math.Sin(a))
	}
	c.ClosePath()
	c.Fill(raster.NonZero)
}

func drawTextDemo(c *canvas.Canvas) {
	c.Save()
	defer c.Restore()

	must(c.SetFont(`36px "Go Bold"`))
	must(c.SetFillStyleString("white"))
	c.SetTextAlign(text.AlignCenter)
	must(c.SetLetterSpacing("2px"))
	w := float64(c.Width())
	c.FillTextWidth("gogpu canvas", w/2, float64(c.Height())-60, w-40)

	must(c.SetFont("16px Go"))
	must(c.SetStrokeStyleString("rgb(255 255 255 / 60%)"))
	c.SetLineWidth(0.5)
	c.StrokeText("fillText · strokeText · measureText", w/2, float64(c.Height())-30)
}
