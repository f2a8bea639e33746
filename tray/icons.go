package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"runtime"
)

var (
	LiveColor  = color.RGBA{R: 52, G: 199, B: 89, A: 255}
	MutedColor = color.RGBA{R: 255, G: 59, B: 48, A: 255}

	pngLive   []byte
	pngMuted  []byte
	iconLive  []byte
	iconMuted []byte
)

func init() {
	pngLive = renderIcon(32, LiveColor, false)
	pngMuted = renderIcon(32, MutedColor, true)
	iconLive = platformIcon(pngLive)
	iconMuted = platformIcon(pngMuted)
}

// Icon returns the PNG form of the tray icon for the given state.
func Icon(muted bool) []byte {
	if muted {
		return pngMuted
	}
	return pngLive
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("encodePNG: " + err.Error())
	}
	return buf.Bytes()
}

// renderIcon draws a filled dot on a dark ring, with a diagonal bar when
// slashed.
func renderIcon(size int, dot color.RGBA, slashed bool) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	r := c - 1
	dotR := r * 0.62
	barHW := float64(size) * 0.07
	for y := range size {
		for x := range size {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			d := math.Hypot(fx-c, fy-c)
			switch {
			case d > r:
				continue
			case slashed && math.Abs((fx-c)-(fy-c))/math.Sqrt2 <= barHW:
				img.Set(x, y, color.White)
			case d <= dotR:
				img.Set(x, y, dot)
			default:
				img.Set(x, y, color.Black)
			}
		}
	}
	return encodePNG(img)
}

// platformIcon wraps the PNG in an ICO container on Windows, which the
// notification area requires.
func platformIcon(p []byte) []byte {
	if runtime.GOOS != "windows" {
		return p
	}
	return encodeICO(p)
}

// encodeICO builds a single-image ICO file holding a PNG payload.
func encodeICO(p []byte) []byte {
	cfg, err := png.DecodeConfig(bytes.NewReader(p))
	if err != nil {
		panic("encodeICO: " + err.Error())
	}
	dim := func(n int) byte {
		if n >= 256 {
			return 0
		}
		return byte(n)
	}

	var buf bytes.Buffer
	// ICONDIR
	binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.WriteByte(dim(cfg.Width))
	buf.WriteByte(dim(cfg.Height))
	buf.WriteByte(0)                                    // palette
	buf.WriteByte(0)                                    // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // planes
	binary.Write(&buf, binary.LittleEndian, uint16(32)) // bpp
	binary.Write(&buf, binary.LittleEndian, uint32(len(p)))
	binary.Write(&buf, binary.LittleEndian, uint32(6+16))
	buf.Write(p)
	return buf.Bytes()
}
