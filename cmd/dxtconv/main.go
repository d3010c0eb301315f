// Command dxtconv encodes and decodes DXT/BC block images from the
// command line.
//
// Usage:
//
//	dxtconv enc [options] <input.png> <output.dxt>   PNG → DXT
//	dxtconv dec [options] <input.dxt> <output.png>   DXT → PNG
//	dxtconv info <input.dxt>                         Display block-image metadata
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/texelcomp/dxtimage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "enc":
		err = runEnc(os.Args[2:])
	case "dec":
		err = runDec(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "dxtconv: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "dxtconv: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  dxtconv enc [options] <input.png> <output.dxt>   Encode PNG to a DXT block image
  dxtconv dec [options] <input.dxt> <output.png>    Decode a DXT block image to PNG
  dxtconv info <input.dxt>                          Print format, dimensions, and alpha presence

Run "dxtconv <command> -h" for command-specific options.
`)
}

func parseFormat(s string) (dxtimage.Format, error) {
	switch strings.ToLower(s) {
	case "dxt1":
		return dxtimage.DXT1, nil
	case "dxt1a":
		return dxtimage.DXT1A, nil
	case "dxt3":
		return dxtimage.DXT3, nil
	case "dxt5":
		return dxtimage.DXT5, nil
	case "dxt5a":
		return dxtimage.DXT5A, nil
	case "dxn_xy", "dxnxy":
		return dxtimage.DXNXY, nil
	case "dxn_yx", "dxnyx":
		return dxtimage.DXNYX, nil
	default:
		return dxtimage.FormatInvalid, fmt.Errorf("unknown format %q (use dxt1/dxt1a/dxt3/dxt5/dxt5a/dxn_xy/dxn_yx)", s)
	}
}

func parseBackend(s string) (dxtimage.Backend, error) {
	switch strings.ToLower(s) {
	case "crn", "":
		return dxtimage.CRN, nil
	case "crnf":
		return dxtimage.CRNF, nil
	case "ryg":
		return dxtimage.RYG, nil
	default:
		return 0, fmt.Errorf("unknown backend %q (use crn/crnf/ryg)", s)
	}
}

func parseQuality(s string) (dxtimage.Quality, error) {
	switch strings.ToLower(s) {
	case "superfast":
		return dxtimage.Superfast, nil
	case "fast":
		return dxtimage.Fast, nil
	case "normal", "":
		return dxtimage.Normal, nil
	case "better":
		return dxtimage.Better, nil
	case "uber":
		return dxtimage.Uber, nil
	default:
		return 0, fmt.Errorf("unknown quality %q (use superfast/fast/normal/better/uber)", s)
	}
}

func runEnc(args []string) error {
	fs := flag.NewFlagSet("enc", flag.ContinueOnError)
	format := fs.String("format", "dxt5", "output format: dxt1/dxt1a/dxt3/dxt5/dxt5a/dxn_xy/dxn_yx")
	backend := fs.String("backend", "crn", "compressor: crn/crnf/ryg")
	quality := fs.String("q", "normal", "quality: superfast/fast/normal/better/uber")
	perceptual := fs.Bool("perceptual", false, "perceptual (luma-weighted) error metric")
	helperThreads := fs.Int("threads", 0, "number of helper threads beyond the calling one")
	threshold := fs.Int("alpha_threshold", 128, "DXT1A transparency threshold (0-255)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("enc: missing input/output paths\nUsage: dxtconv enc [options] <input.png> <output.dxt>")
	}

	f, err := parseFormat(*format)
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}
	be, err := parseBackend(*backend)
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}
	q, err := parseQuality(*quality)
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}

	surface, err := readPNGAsSurface(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}

	params := dxtimage.EncodeParams{
		Backend:             be,
		Quality:             q,
		Perceptual:          *perceptual,
		PixelsHaveAlpha:     f == dxtimage.DXT1A,
		DXT1AAlphaThreshold: uint8(*threshold),
		HelperThreads:       *helperThreads,
	}

	img, err := dxtimage.Encode(surface, f, params)
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}

	return writeDXTFile(fs.Arg(1), img)
}

func runDec(args []string) error {
	fs := flag.NewFlagSet("dec", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("dec: missing input/output paths\nUsage: dxtconv dec [options] <input.dxt> <output.png>")
	}

	img, err := readDXTFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("dec: %w", err)
	}

	surface := dxtimage.NewSurface(img.Width(), img.Height())
	if err := dxtimage.Decode(img, surface, dxtimage.DecodeParams{}); err != nil {
		return fmt.Errorf("dec: %w", err)
	}

	return writeSurfaceAsPNG(fs.Arg(1), surface)
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("info: missing input path\nUsage: dxtconv info <input.dxt>")
	}

	img, err := readDXTFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	fmt.Printf("format:      %v\n", img.Format())
	fmt.Printf("dimensions:  %dx%d\n", img.Width(), img.Height())
	fmt.Printf("blocks:      %dx%d\n", img.BlocksX(), img.BlocksY())
	fmt.Printf("has_alpha:   %v\n", img.HasAlpha())
	return nil
}

func readPNGAsSurface(path string) (*dxtimage.Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding PNG: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	surface := dxtimage.NewSurface(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			surface.SetPixel(x, y, dxtimage.RGBA{
				R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8),
			})
		}
	}
	return surface, nil
}

func writeSurfaceAsPNG(path string, surface *dxtimage.Surface) error {
	w, h := surface.Width(), surface.Height()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := surface.Pixel(x, y)
			out.SetNRGBA(x, y, color.NRGBA{R: px.R, G: px.G, B: px.B, A: px.A})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, out)
}
