package v1

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"

	_ "golang.org/x/image/webp"
)

// uploadDevice представляет загруженный файл как устройство захвата:
// снимок декодируется из изображения, видео читается как есть.
type uploadDevice struct {
	file     multipart.File
	declared string
}

func openUpload(fh *multipart.FileHeader) (*uploadDevice, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	return &uploadDevice{file: f, declared: fh.Header.Get("Content-Type")}, nil
}

func (d *uploadDevice) Snapshot(context.Context) (image.Image, error) {
	img, _, err := image.Decode(d.file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode uploaded image: %w", err)
	}
	return img, nil
}

func (d *uploadDevice) Record(_ context.Context, maxBytes int64) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(d.file, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read uploaded video: %w", err)
	}
	return data, d.declared, nil
}

func (d *uploadDevice) Close() error {
	return d.file.Close()
}
