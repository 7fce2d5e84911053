package gui

import (
	"errors"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/sliceit/internal/core"
	"github.com/vovakirdan/sliceit/internal/games/sliceit"
)

var errNoShape = errors.New("kind has no shape")

// shape is the silhouette a kind is drawn with.
type shape int

const (
	shapeNone shape = iota
	shapeBook
	shapeBulb
	shapeMug
	shapeBomb
	shapeToken
)

func shapeOf(k sliceit.Kind) shape {
	switch k {
	case sliceit.KindBook, sliceit.KindGoldenBook:
		return shapeBook
	case sliceit.KindLightBulb, sliceit.KindGoldenLightBulb:
		return shapeBulb
	case sliceit.KindCoffeeMug, sliceit.KindGoldenCoffeeMug:
		return shapeMug
	case sliceit.KindBomb:
		return shapeBomb
	}
	if k.IsPowerUp() {
		return shapeToken
	}
	return shapeNone
}

// spriteKinds lists every kind that falls as a regular entity.
var spriteKinds = []sliceit.Kind{
	sliceit.KindBook,
	sliceit.KindLightBulb,
	sliceit.KindCoffeeMug,
	sliceit.KindBomb,
	sliceit.KindGoldenBook,
	sliceit.KindGoldenLightBulb,
	sliceit.KindGoldenCoffeeMug,
	sliceit.KindSlowMotion,
	sliceit.KindMagnet,
	sliceit.KindBombShield,
	sliceit.KindDoublePoints,
	sliceit.KindFreeze,
}

// spriteSet holds one generated image per kind.
type spriteSet struct {
	images  map[sliceit.Kind]*ebiten.Image
	missing map[sliceit.Kind]bool
	log     *log.Logger
}

func newSpriteSet(logger *log.Logger) *spriteSet {
	s := &spriteSet{
		images:  make(map[sliceit.Kind]*ebiten.Image),
		missing: make(map[sliceit.Kind]bool),
		log:     logger,
	}
	for _, k := range spriteKinds {
		img, err := drawSprite(k)
		if err != nil {
			logger.Warn("cannot build sprite", "kind", k, "err", err)
			continue
		}
		s.images[k] = img
	}
	return s
}

// get returns the sprite for k. A kind without a sprite is logged once.
func (s *spriteSet) get(k sliceit.Kind) (*ebiten.Image, bool) {
	img, ok := s.images[k]
	if !ok && !s.missing[k] {
		s.missing[k] = true
		s.log.Warn("no sprite for kind, skipping draw", "kind", k)
	}
	return img, ok
}

func drawSprite(k sliceit.Kind) (*ebiten.Image, error) {
	sh := shapeOf(k)
	if sh == shapeNone {
		return nil, errNoShape
	}
	fill, err := parseHex(k.Glow())
	if err != nil {
		return nil, err
	}

	size := int(k.Size())
	img := ebiten.NewImage(size, size)
	sz := float32(size)
	outline := rgba(k.Color())
	if k.IsGolden() {
		outline = color.RGBA{R: 255, G: 240, B: 160, A: 255}
	}

	switch sh {
	case shapeBook:
		vector.DrawFilledRect(img, sz*0.15, sz*0.1, sz*0.7, sz*0.8, fill, true)
		vector.DrawFilledRect(img, sz*0.15, sz*0.1, sz*0.1, sz*0.8, fade(fill, 0.6), true)
		vector.StrokeRect(img, sz*0.15, sz*0.1, sz*0.7, sz*0.8, 2, outline, true)
	case shapeBulb:
		vector.DrawFilledCircle(img, sz/2, sz*0.4, sz*0.3, fill, true)
		vector.DrawFilledRect(img, sz*0.38, sz*0.65, sz*0.24, sz*0.2, rgba(core.ColorGray), true)
		vector.StrokeCircle(img, sz/2, sz*0.4, sz*0.3, 2, outline, true)
	case shapeMug:
		vector.DrawFilledRect(img, sz*0.15, sz*0.2, sz*0.5, sz*0.65, fill, true)
		vector.StrokeCircle(img, sz*0.72, sz*0.5, sz*0.14, 4, fill, true)
		vector.StrokeRect(img, sz*0.15, sz*0.2, sz*0.5, sz*0.65, 2, outline, true)
	case shapeBomb:
		vector.DrawFilledCircle(img, sz/2, sz*0.55, sz*0.35, fill, true)
		vector.StrokeCircle(img, sz/2, sz*0.55, sz*0.35, 2, outline, true)
		vector.StrokeLine(img, sz/2, sz*0.2, sz*0.65, sz*0.05, 3, rgba(core.ColorBrightRed), true)
	case shapeToken:
		vector.DrawFilledCircle(img, sz/2, sz/2, sz*0.42, fade(fill, 0.8), true)
		vector.StrokeCircle(img, sz/2, sz/2, sz*0.42, 3, color.White, true)
		ebitenutil.DebugPrintAt(img, string(k.Glyph()), size/2-3, size/2-8)
	}
	return img, nil
}
