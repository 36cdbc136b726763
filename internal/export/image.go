package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/disintegration/imaging"

	"github.com/piwi3910/quilting/internal/board"
	"github.com/piwi3910/quilting/internal/model"
)

var (
	imageBackground = color.NRGBA{245, 240, 225, 255}
	imageGridLine   = color.NRGBA{210, 205, 190, 255}
	imageOutline    = color.NRGBA{30, 30, 30, 255}
)

// RenderImage draws the layout as a raster with cellSize pixels per cell.
// Each covered cell is filled with its patch colour; a dark line separates
// cells that belong to different patches.
func RenderImage(layout model.Layout, cellSize int) (*image.NRGBA, error) {
	if cellSize < 2 {
		return nil, fmt.Errorf("cell size %d is too small", cellSize)
	}
	b, err := board.Restore(layout)
	if err != nil {
		return nil, err
	}
	grid := b.Render()
	owners := b.Owners()

	img := imaging.New(grid.Width*cellSize+1, grid.Height*cellSize+1, imageBackground)

	fill := func(r image.Rectangle, c color.NRGBA) {
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	}

	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			px, py := col*cellSize, row*cellSize
			tok := grid.Rows[row][col]
			if !tok.IsBlank() {
				fill(image.Rect(px, py, px+cellSize, py+cellSize), nrgba(tok.BG))
			}
		}
	}

	// Grid lines between every cell
	for col := 0; col <= grid.Width; col++ {
		fill(image.Rect(col*cellSize, 0, col*cellSize+1, img.Bounds().Dy()), imageGridLine)
	}
	for row := 0; row <= grid.Height; row++ {
		fill(image.Rect(0, row*cellSize, img.Bounds().Dx(), row*cellSize+1), imageGridLine)
	}

	// Patch outlines where ownership changes
	owner := func(row, col int) string {
		if row < 0 || col < 0 || row >= grid.Height || col >= grid.Width {
			return ""
		}
		return owners[row][col]
	}
	for row := 0; row <= grid.Height; row++ {
		for col := 0; col <= grid.Width; col++ {
			here := owner(row, col)
			if here != owner(row, col-1) {
				x := col * cellSize
				fill(image.Rect(x, row*cellSize, x+1, (row+1)*cellSize+1), imageOutline)
			}
			if here != owner(row-1, col) {
				y := row * cellSize
				fill(image.Rect(col*cellSize, y, (col+1)*cellSize+1, y+1), imageOutline)
			}
		}
	}

	return img, nil
}

// ExportPNG renders the layout and writes it as a PNG file.
func ExportPNG(path string, layout model.Layout, cellSize int) error {
	img, err := RenderImage(layout, cellSize)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	if err := imaging.Encode(file, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return file.Close()
}

func nrgba(c model.RGB) color.NRGBA {
	return color.NRGBA{c.R, c.G, c.B, 255}
}
