package sliceit

import "github.com/vovakirdan/sliceit/internal/core"

// Kind identifies the type of a falling object.
type Kind int

const (
	KindBook Kind = iota
	KindLightBulb
	KindCoffeeMug
	KindBomb
	KindGoldenBook
	KindGoldenLightBulb
	KindGoldenCoffeeMug
	KindSlowMotion
	KindMagnet
	KindBombShield
	KindDoublePoints
	KindFreeze
	KindBoss
	kindCount // Sentinel for counting kinds
)

// Class groups kinds by how a slice resolves them.
type Class int

const (
	ClassPlain Class = iota
	ClassGolden
	ClassHazard
	ClassPowerUp
	ClassBoss
	classNone // Kinds outside the table
)

// PowerUpType identifies a temporary gameplay modifier.
type PowerUpType int

const (
	PowerUpSlowMotion PowerUpType = iota
	PowerUpMagnet
	PowerUpBombShield
	PowerUpDoublePoints
	PowerUpFreeze
	powerUpCount // Sentinel for counting types
)

// noPowerUp marks kinds that do not activate anything.
const noPowerUp PowerUpType = -1

// kindInfo is one row of the capability table.
type kindInfo struct {
	name    string
	class   Class
	points  int
	weight  int
	size    float64
	glow    string // Hex color used by graphical frontends
	color   core.Color
	glyph   rune // Zero means no terminal glyph
	powerUp PowerUpType
}

var kindTable = [kindCount]kindInfo{
	KindBook:            {"book", ClassPlain, 5, 30, 60, "#8B4513", core.ColorBrown, '▤', noPowerUp},
	KindLightBulb:       {"lightBulb", ClassPlain, 10, 25, 60, "#FFD700", core.ColorBrightYellow, '●', noPowerUp},
	KindCoffeeMug:       {"coffeeMug", ClassPlain, 15, 20, 60, "#4169E1", core.ColorBlue, '◘', noPowerUp},
	KindBomb:            {"bomb", ClassHazard, 0, 15, 60, "#000000", core.ColorRed, '✱', noPowerUp},
	KindGoldenBook:      {"goldenBook", ClassGolden, 25, 5, 70, "#D4AF37", core.ColorGold, '▤', noPowerUp},
	KindGoldenLightBulb: {"goldenLightBulb", ClassGolden, 50, 4, 70, "#D4AF37", core.ColorGold, '●', noPowerUp},
	KindGoldenCoffeeMug: {"goldenCoffeeMug", ClassGolden, 75, 3, 70, "#D4AF37", core.ColorGold, '◘', noPowerUp},
	KindSlowMotion:      {"slowMotion", ClassPowerUp, 0, 5, 60, "#0088FF", core.ColorBrightBlue, 'S', PowerUpSlowMotion},
	KindMagnet:          {"magnet", ClassPowerUp, 0, 4, 60, "#FF8800", core.ColorOrange, 'M', PowerUpMagnet},
	KindBombShield:      {"bombShield", ClassPowerUp, 0, 3, 60, "#00FF88", core.ColorBrightGreen, 'H', PowerUpBombShield},
	KindDoublePoints:    {"doublePoints", ClassPowerUp, 0, 3, 60, "#FF00FF", core.ColorMagenta, 'D', PowerUpDoublePoints},
	KindFreeze:          {"freeze", ClassPowerUp, 0, 2, 60, "#00FFFF", core.ColorCyan, 'F', PowerUpFreeze},
	KindBoss:            {"boss", ClassBoss, 0, 0, 200, "#AA0000", core.ColorRed, 0, noPowerUp},
}

var (
	plainKinds   = []Kind{KindBook, KindLightBulb, KindCoffeeMug}
	goldenKinds  = []Kind{KindGoldenBook, KindGoldenLightBulb, KindGoldenCoffeeMug}
	powerUpKinds = []Kind{KindSlowMotion, KindMagnet, KindBombShield, KindDoublePoints, KindFreeze}
)

func (k Kind) info() kindInfo {
	if k < 0 || k >= kindCount {
		return kindInfo{name: "unknown", class: classNone, powerUp: noPowerUp}
	}
	return kindTable[k]
}

// String returns the stable kind name used in events and logs.
func (k Kind) String() string { return k.info().name }

// Class returns the resolution class of the kind.
func (k Kind) Class() Class { return k.info().class }

// Points returns the base score for slicing the kind.
func (k Kind) Points() int { return k.info().points }

// Weight returns the relative spawn weight.
func (k Kind) Weight() int { return k.info().weight }

// Size returns the edge length of the kind's square bounding box.
func (k Kind) Size() float64 { return k.info().size }

// Glow returns the hex glow color.
func (k Kind) Glow() string { return k.info().glow }

// Color returns the terminal color.
func (k Kind) Color() core.Color { return k.info().color }

// Glyph returns the terminal glyph, or zero if the kind has none.
func (k Kind) Glyph() rune { return k.info().glyph }

// PowerUp returns the power-up activated by slicing the kind.
func (k Kind) PowerUp() (PowerUpType, bool) {
	t := k.info().powerUp
	return t, t != noPowerUp
}

// CostsLife reports whether missing the kind costs a life.
// Only plain kinds do.
func (k Kind) CostsLife() bool { return k.Class() == ClassPlain }

// IsHazard reports whether slicing the kind ends the run.
func (k Kind) IsHazard() bool { return k.Class() == ClassHazard }

// IsGolden reports whether the kind is a golden variant.
func (k Kind) IsGolden() bool { return k.Class() == ClassGolden }

// IsPowerUp reports whether the kind activates a power-up.
func (k Kind) IsPowerUp() bool { return k.Class() == ClassPowerUp }

// String returns the stable power-up name.
func (t PowerUpType) String() string {
	switch t {
	case PowerUpSlowMotion:
		return "slowMotion"
	case PowerUpMagnet:
		return "magnet"
	case PowerUpBombShield:
		return "bombShield"
	case PowerUpDoublePoints:
		return "doublePoints"
	case PowerUpFreeze:
		return "freeze"
	default:
		return "unknown"
	}
}

// Label returns a short display name for HUDs.
func (t PowerUpType) Label() string {
	switch t {
	case PowerUpSlowMotion:
		return "SLOW"
	case PowerUpMagnet:
		return "MAGNET"
	case PowerUpBombShield:
		return "SHIELD"
	case PowerUpDoublePoints:
		return "2X"
	case PowerUpFreeze:
		return "FREEZE"
	default:
		return "?"
	}
}
