package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	wsi "github.com/kpfaulkner/wsi-go"
)

func main() {
	infile := flag.String("i", "", "input container file")
	offset := flag.Int64("offset", 0, "byte offset of the JPEG stream")
	outfile := flag.String("o", "", "output png file")
	thumb := flag.Int("thumb", 0, "downscale so the longest side is this many pixels (0 = no scaling)")
	flag.Parse()

	if *infile == "" || *outfile == "" {
		fmt.Printf("both input and output files must be specified\n")
		os.Exit(1)
	}

	cfg, err := wsi.ProbeFile(*infile, *offset)
	if err != nil {
		log.Errorf("Error probing dimensions: %v", err)
		return
	}
	fmt.Printf("stream is %dx%d\n", cfg.Width, cfg.Height)

	start := time.Now()
	img, err := wsi.DecodeTile(*infile, *offset, int32(cfg.Width), int32(cfg.Height))
	if err != nil {
		log.Errorf("Error decoding: %v", err)
		return
	}
	fmt.Printf("decoding took %d ms\n", time.Since(start).Milliseconds())

	var out image.Image = img
	if *thumb > 0 && (cfg.Width > *thumb || cfg.Height > *thumb) {
		out = scaleDown(img, *thumb)
	}

	f, err := os.Create(*outfile)
	if err != nil {
		log.Fatalf("Error creating output file: %v", err)
	}
	defer f.Close()
	if err = png.Encode(f, out); err != nil {
		log.Fatalf("Error encoding png: %v", err)
	}
}

func scaleDown(img *image.RGBA, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
