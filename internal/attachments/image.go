package attachments

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	MaxImageSide = 1600
	webpQuality  = 80
)

var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Payload é o conteúdo final que vai para o storage.
type Payload struct {
	Data        []byte
	ContentType string
	Ext         string
}

// Normalize detecta o tipo real do arquivo. JPEG e PNG são reduzidos para
// caber em MaxImageSide e convertidos para WebP; os demais tipos aceitos
// passam sem alteração.
func Normalize(data []byte) (*Payload, error) {
	mt := mimetype.Detect(data).String()

	ext, ok := allowedTypes[mt]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeUnsupportedFile)
	}

	if mt != "image/jpeg" && mt != "image/png" {
		return &Payload{Data: data, ContentType: mt, Ext: ext}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeUnsupportedFile)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, fit(src, MaxImageSide), &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return &Payload{Data: buf.Bytes(), ContentType: "image/webp", Ext: ".webp"}, nil
}

func fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
