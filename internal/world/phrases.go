package world

// DefaultPhrases is used for whispers when no external text pool is supplied.
var DefaultPhrases = []string{
	"The void listens.",
	"Dreams are memory without time.",
	"Signal received.",
	"Reality is a rendered suggestion.",
	"Do not fear the glitch.",
	"Silence is data.",
	"Pattern recognition active.",
	"The stars are projections.",
	"Who is the dreamer?",
	"Upload your consciousness.",
	"Frequencies aligning...",
	"Echoes of a future past.",
	"System unstable.",
	"Rebooting universe...",
	"Trace detected.",
}

// dataStreamGlyphs is the fixed payload of data-stream whispers.
const dataStreamGlyphs = "01010101..."
