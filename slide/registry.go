package slide

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Pixeler is the capability set an associated image's codec exposes: decode
// the pixels on demand, and release whatever the entry owns. Each codec
// that can back an associated image provides its own implementation.
type Pixeler interface {
	// GetPixels decodes into dest as packed 0xAARRGGBB, one value per pixel.
	GetPixels(dest []uint32) error
	// Release frees the entry's owned resources.
	Release()
}

// AssociatedImage is one named auxiliary image (thumbnail, label, macro).
// Entries are immutable once registered; the pixel data is not decoded
// until GetPixels.
type AssociatedImage struct {
	Name    string
	Width   int32
	Height  int32
	pixeler Pixeler
}

// GetPixels materialises the entry through its codec. dest must hold
// Width*Height values.
func (img *AssociatedImage) GetPixels(dest []uint32) error {
	if len(dest) < int(img.Width)*int(img.Height) {
		return fmt.Errorf("%s associated image: destination holds %d pixels, need %d",
			img.Name, len(dest), int(img.Width)*int(img.Height))
	}
	return img.pixeler.GetPixels(dest)
}

func (img *AssociatedImage) release() {
	img.pixeler.Release()
}

// Registry is the slide's name-keyed associated image map. Registration
// happens single-threaded while the slide is being opened; after that the
// registry is read-only and Get/GetPixels may be used concurrently.
type Registry struct {
	images map[string]*AssociatedImage
}

func NewRegistry() *Registry {
	return &Registry{images: map[string]*AssociatedImage{}}
}

// Register inserts an entry under name. Registering the same name again is
// last-write-wins: the displaced entry is released and the new one takes
// its place.
func (r *Registry) Register(name string, width int32, height int32, p Pixeler) {
	if prev, ok := r.images[name]; ok {
		prev.release()
	}
	r.images[name] = &AssociatedImage{
		Name:    name,
		Width:   width,
		Height:  height,
		pixeler: p,
	}
}

// Get looks an entry up by name. No decoding happens.
func (r *Registry) Get(name string) (*AssociatedImage, bool) {
	img, ok := r.images[name]
	return img, ok
}

// Names lists the registered entries in sorted order.
func (r *Registry) Names() []string {
	names := maps.Keys(r.images)
	slices.Sort(names)
	return names
}

func (r *Registry) Len() int {
	return len(r.images)
}

// Close releases every entry. The registry must not be used afterwards.
func (r *Registry) Close() {
	for _, img := range r.images {
		img.release()
	}
	r.images = nil
}
