package viz

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"
)

const (
	charW = 8
	charH = 16
)

// FrameImage rasterizes the canvas: every lit braille dot becomes a block of
// its cell's color on the theme background.
func FrameImage(c *Canvas, bg RGB) *image.Paletted {
	imgW, imgH := c.Width*charW, c.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), palette.WebSafe)
	bgIdx := uint8(img.Palette.Index(color.RGBA{bg[0], bg[1], bg[2], 0xff}))
	for i := range img.Pix {
		img.Pix[i] = bgIdx
	}

	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blank)
			if pattern == 0 {
				continue
			}
			rgb := c.Colors[row][col]
			idx := uint8(img.Palette.Index(color.RGBA{rgb[0], rgb[1], rgb[2], 0xff}))
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	return img
}

func (m *Model) captureFrame() {
	m.frames = append(m.frames, FrameImage(m.canvas, CurrentTheme.Background))
}

func (m *Model) saveGIF() {
	if err := WriteGIF(m.recordPath, m.frames, 100/m.fps); err != nil {
		m.logger.Error("save recording", "path", m.recordPath, "err", err)
		return
	}
	m.logger.Info("recording saved", "path", m.recordPath, "frames", len(m.frames))
}

// WriteGIF writes frames as a looping animation with delay hundredths of a
// second between frames.
func WriteGIF(path string, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, max(delay, 1))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
