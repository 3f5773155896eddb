package features

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Every image is reduced to a fixed 28x28 resolution before vectorization.
const (
	Side     = 28
	Channels = 3
	InputDim = Channels * Side * Side
)

// FromImage converts a decoded image into a normalized feature vector of
// length InputDim. The image is resized to Side x Side with a Catmull-Rom
// kernel, then laid out channel-major: the red plane first (row-major),
// then green, then blue, each 8-bit value divided by 255 into [0, 1].
func FromImage(img image.Image) []float64 {
	dst := image.NewRGBA(image.Rect(0, 0, Side, Side))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	const plane = Side * Side
	vec := make([]float64, InputDim)
	for y := 0; y < Side; y++ {
		for x := 0; x < Side; x++ {
			px := dst.RGBAAt(x, y)
			i := y*Side + x
			vec[i] = float64(px.R) / 255.0
			vec[plane+i] = float64(px.G) / 255.0
			vec[2*plane+i] = float64(px.B) / 255.0
		}
	}
	return vec
}

// FromFile decodes the image at path and extracts its feature vector.
func FromFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open image %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode image %s", path)
	}
	return FromImage(img), nil
}
