package keys

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

const esc = 0x1b

var sequences = map[string]tea.KeyType{
	"\x1b[A":  tea.KeyUp,
	"\x1b[B":  tea.KeyDown,
	"\x1bOA":  tea.KeyUp,
	"\x1bOB":  tea.KeyDown,
	"\x1b[5~": tea.KeyPgUp,
	"\x1b[6~": tea.KeyPgDown,
}

// Decode reads one key from the front of buf. It returns the key, the
// number of bytes consumed and whether a key was recognised. Unknown
// sequences are consumed and reported as not ok so callers can drop them.
func Decode(buf []byte) (tea.Key, int, bool) {
	if len(buf) == 0 {
		return tea.Key{}, 0, false
	}

	if buf[0] == esc {
		for seq, typ := range sequences {
			if bytes.HasPrefix(buf, []byte(seq)) {
				return tea.Key{Type: typ}, len(seq), true
			}
		}
		if len(buf) == 1 {
			return tea.Key{Type: tea.KeyEscape}, 1, true
		}
		return tea.Key{}, skipEscape(buf), false
	}

	switch buf[0] {
	case 0x03:
		return tea.Key{Type: tea.KeyCtrlC}, 1, true
	case '\r', '\n':
		return tea.Key{Type: tea.KeyEnter}, 1, true
	}

	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return tea.Key{}, max(size, 1), false
	}
	return tea.Key{Type: tea.KeyRunes, Runes: []rune{r}}, size, true
}

// skipEscape returns the length of the unrecognised escape sequence at the
// start of buf: ESC [ params final, ESC O x, or a lone ESC plus one byte.
func skipEscape(buf []byte) int {
	switch buf[1] {
	case '[':
		for i := 2; i < len(buf); i++ {
			if buf[i] >= 0x40 && buf[i] <= 0x7e {
				return i + 1
			}
		}
		return len(buf)
	case 'O':
		return min(3, len(buf))
	}
	return 2
}
