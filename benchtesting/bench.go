package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/wsi-go/codec"
)

// repeated-decode harness for profiling the tile decode path.
func main() {
	infile := flag.String("i", "", "input container file")
	offset := flag.Int64("offset", 0, "byte offset of the JPEG stream")
	count := flag.Int("n", 100, "number of decode iterations")
	flag.Parse()

	if *infile == "" {
		fmt.Printf("input file must be specified\n")
		os.Exit(1)
	}

	//p := profile.Start(profile.MemProfileHeap, profile.ProfilePath("."))
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	defer p.Stop()

	w, h, err := codec.ReadDimensions(*infile, *offset)
	if err != nil {
		log.Errorf("Error probing dimensions: %v", err)
		return
	}
	fmt.Printf("stream is %dx%d\n", w, h)

	dest := make([]uint32, int(w)*int(h))
	start := time.Now()
	for i := 0; i < *count; i++ {
		if err = codec.Read(*infile, *offset, dest, w, h); err != nil {
			fmt.Printf("Error decoding: %v\n", err)
			return
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("%d decodes took %d ms (%.2f ms each)\n",
		*count, elapsed.Milliseconds(),
		float64(elapsed.Microseconds())/float64(*count)/1000.0)
}
