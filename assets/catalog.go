package assets

// Kind separates collectibles from hazards. It is the only catalog property
// the simulation reads; names and glyphs are for the presentation layer.
type Kind uint8

const (
	KindGift Kind = iota
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindGift:
		return "gift"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Entry is one visual variant the tornado can throw out.
type Entry struct {
	Name  string
	Glyph string
	Kind  Kind
}

// Gifts is cycled round-robin by the spawner.
var Gifts = []Entry{
	{Name: "Box", Glyph: "🎁", Kind: KindGift},
	{Name: "Elf Cap", Glyph: "🧢", Kind: KindGift},
	{Name: "Porridge", Glyph: "🥣", Kind: KindGift},
	{Name: "Ornament", Glyph: "🔮", Kind: KindGift},
	{Name: "Peppermint Stick", Glyph: "🍬", Kind: KindGift},
}

// Enemies is cycled round-robin by the spawner.
var Enemies = []Entry{
	{Name: "Bear", Glyph: "🐻", Kind: KindEnemy},
}

// Actor and decoration glyphs.
const (
	GlyphPlayer  = "🎅"
	GlyphElf     = "🧝"
	GlyphTornado = "🌀"
	GlyphHeart   = "❤"
	GlyphNoHeart = "·"
)

// TornadoArms are drawn around the tornado glyph; the frame is picked from
// the current rotation so the spin is visible in a terminal.
var TornadoArms = []string{"|", "/", "-", "\\"}
