package data

// flagWord identifies which of the blob's two aggregate flag words (if any)
// an option is realized in, and at which bit position.
type flagWord struct {
	top  bool // true: OptFlags word, false: OptCadtFlags word
	bit  uint32
}

// flagBits maps each boolean option kind to its home in one of the two
// 32-bit aggregate flag words. Every other option kind is stored entirely
// through its own field slot in Blob.
var flagBits = map[Opt]flagWord{
	OptExist:    {top: true, bit: 0},
	OptBefore:   {top: false, bit: 0},
	OptPhysdev:  {top: false, bit: 1},
	OptNomatch:  {top: false, bit: 2},
	OptForceadd: {top: false, bit: 3},
	OptCounters: {top: false, bit: 4},
	OptSkbinfo:  {top: false, bit: 5},
}

// FlagWordBit reports the word/bit a flag-backed option lives at.
func FlagWordBit(o Opt) (top bool, bit uint32, ok bool) {
	fw, ok := flagBits[o]
	return fw.top, fw.bit, ok
}
