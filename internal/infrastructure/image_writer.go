package infrastructure

import (
	"bufio"
	"fmt"
	"fractal-renderer/internal/domain"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	_ domain.ImageWriter     = (*ImageFileWriter)(nil)
	_ domain.HistogramWriter = (*ImageFileWriter)(nil)
)

// ImageFileWriter writes images as plain PGM ("P2"), or as grayscale PNG when
// the file name ends in ".png".
type ImageFileWriter struct {
	logger *zap.Logger
}

func NewImageFileWriter(logger *zap.Logger) *ImageFileWriter {
	return &ImageFileWriter{logger: logger}
}

func (w *ImageFileWriter) WriteImage(filename string, img *domain.ImageBuffer) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	if strings.EqualFold(filepath.Ext(filename), ".png") {
		return encodePNG(file, img)
	}

	writer := bufio.NewWriter(file)
	if err := EncodePGM(writer, img); err != nil {
		return err
	}
	return writer.Flush()
}

func (w *ImageFileWriter) WriteHistogram(filename string, hist *domain.Histogram) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	writer := bufio.NewWriter(file)

	// Заголовок
	fmt.Fprintf(writer, "%s\n", strings.Join([]string{"X", "Y"}, "\t"))

	for i := 0; i < hist.Len; i++ {
		fmt.Fprintf(writer, "%.2e\t%10d\n", hist.Bins[i], hist.Vals[i])
	}

	return writer.Flush()
}

// EncodePGM writes the "P2" header followed by one text line per row, each
// value followed by a single space.
func EncodePGM(out io.Writer, img *domain.ImageBuffer) error {
	if _, err := fmt.Fprintf(out, "P2\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}

	buf := make([]byte, 0, img.Width*4+1)
	for _, row := range img.Rows {
		buf = buf[:0]
		for _, val := range row {
			buf = strconv.AppendUint(buf, uint64(val), 10)
			buf = append(buf, ' ')
		}
		buf = append(buf, '\n')
		if _, err := out.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func encodePNG(out io.Writer, img *domain.ImageBuffer) error {
	gray := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	for y, row := range img.Rows {
		copy(gray.Pix[y*gray.Stride:], row)
	}
	return png.Encode(out, gray)
}
