package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// DeckArt holds the portraits of one deck; nil entries render as placeholders.
type DeckArt struct {
	Spellcaster image.Image
	Slots       [5]image.Image
}

type TeamArt struct {
	Decks []DeckArt
	QR    image.Image
}

const (
	margin    = 32
	gap       = 12
	portraitW = 240
	portraitH = 336
	tileW     = 180
	tileH     = 252
	qrSide    = 320
)

var (
	background  = color.NRGBA{R: 0x1b, G: 0x1d, B: 0x2b, A: 0xff}
	placeholder = color.NRGBA{R: 0x3a, G: 0x3e, B: 0x55, A: 0xff}
)

// ComposeTeamImage lays out one row per deck: the spellcaster portrait
// followed by the five slot tiles, with the QR code on the right.
func ComposeTeamImage(art TeamArt) image.Image {
	rows := len(art.Decks)
	if rows == 0 {
		rows = 1
	}
	rowW := portraitW + gap + 5*(tileW+gap)
	w := margin*2 + rowW
	if art.QR != nil {
		w += qrSide + gap
	}
	h := margin*2 + rows*portraitH + (rows-1)*gap
	if h < margin*2+qrSide {
		h = margin*2 + qrSide
	}
	canvas := imaging.New(w, h, background)

	for r, d := range art.Decks {
		y := margin + r*(portraitH+gap)
		canvas = paste(canvas, d.Spellcaster, portraitW, portraitH, image.Pt(margin, y))

		x := margin + portraitW + gap
		ty := y + (portraitH-tileH)/2
		for _, s := range d.Slots {
			canvas = paste(canvas, s, tileW, tileH, image.Pt(x, ty))
			x += tileW + gap
		}
	}

	if art.QR != nil {
		q := imaging.Resize(art.QR, qrSide, qrSide, imaging.NearestNeighbor)
		canvas = imaging.Paste(canvas, q, image.Pt(w-margin-qrSide, margin))
	}
	return canvas
}

func paste(canvas *image.NRGBA, img image.Image, w, h int, at image.Point) *image.NRGBA {
	if img == nil {
		return imaging.Paste(canvas, imaging.New(w, h, placeholder), at)
	}
	return imaging.Paste(canvas, imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos), at)
}
