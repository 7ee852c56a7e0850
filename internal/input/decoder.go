package input

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxPendingCSI bounds how many bytes a CSI sequence may accumulate before
// the decoder gives up and drops the lead byte (spec.md §4.3 "otherwise"
// rule) — guards against a hostile or corrupted stream parked forever in
// the "need more bytes" state.
const maxPendingCSI = 16

// Decoder is a restartable state machine over a byte prefix (spec.md §4.3).
// Bytes are appended with Feed; Drain repeatedly decodes complete events
// from the front of the buffer, leaving any partial sequence buffered for
// the next Feed. Events are emitted in the exact order their completing
// bytes arrived.
type Decoder struct {
	buf []byte
}

// NewDecoder returns an empty decoder.
func NewDecoder() *Decoder { return &Decoder{} }

// Feed appends newly read bytes to the internal buffer.
func (d *Decoder) Feed(b []byte) {
	if len(b) == 0 {
		return
	}
	d.buf = append(d.buf, b...)
}

// Drain decodes as many complete KeyEvents as the buffered prefix allows.
// Invalid or unrecognized completed sequences are dropped silently rather
// than surfaced (spec.md §4.3), so the returned slice may be shorter than
// the number of bytes consumed.
func (d *Decoder) Drain() []KeyEvent {
	var events []KeyEvent
	for {
		ev, consumed, needMore := decodeOne(d.buf)
		if needMore {
			break
		}
		if consumed == 0 {
			// Defensive: never spin without making progress.
			break
		}
		d.buf = d.buf[consumed:]
		if ev != nil {
			events = append(events, *ev)
		}
	}
	return events
}

// HasPendingEscape reports whether the buffer holds exactly a bare ESC byte
// awaiting the escape-completion deadline (spec.md §4.3).
func (d *Decoder) HasPendingEscape() bool {
	return len(d.buf) == 1 && d.buf[0] == 0x1B
}

// Timeout resolves a pending bare ESC to a KeyEvent{Escape} once the
// escape-completion deadline has elapsed with no further bytes. The
// controller calls this from its cooperative timeout (spec.md §4.5).
func (d *Decoder) Timeout() (KeyEvent, bool) {
	if !d.HasPendingEscape() {
		return KeyEvent{}, false
	}
	d.buf = d.buf[1:]
	return KeyEvent{Code: KeyEscape}, true
}

// Empty reports whether the buffer holds no unparsed bytes.
func (d *Decoder) Empty() bool { return len(d.buf) == 0 }

// decodeOne attempts to decode exactly one event from the front of buf. It
// returns the event (nil if the completed sequence was dropped), how many
// bytes were consumed, and whether the prefix needs more bytes before a
// decision can be made.
func decodeOne(buf []byte) (ev *KeyEvent, consumed int, needMore bool) {
	if len(buf) == 0 {
		return nil, 0, true
	}

	b0 := buf[0]

	switch {
	case b0 == 0x0D:
		return &KeyEvent{Code: KeyEnter}, 1, false
	case b0 == 0x09:
		return &KeyEvent{Code: KeyTab}, 1, false
	case b0 == 0x7F:
		return &KeyEvent{Code: KeyBackspace}, 1, false
	case b0 >= 0x01 && b0 <= 0x1A:
		r := rune(b0) + 'a' - 1
		return &KeyEvent{Code: KeyChar, Rune: r, Mods: ModCtrl}, 1, false
	case b0 == 0x1B:
		return decodeEscape(buf)
	case b0 >= 0x20 && b0 < 0x80:
		return &KeyEvent{Code: KeyChar, Rune: rune(b0)}, 1, false
	case b0 >= 0x80:
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError {
			if size <= 1 && couldExtendUTF8(buf) {
				return nil, 0, true
			}
			return nil, 1, false
		}
		if size > len(buf) {
			return nil, 0, true
		}
		return &KeyEvent{Code: KeyChar, Rune: r}, size, false
	default:
		return nil, 1, false
	}
}

// couldExtendUTF8 reports whether buf looks like a truncated multi-byte
// UTF-8 lead sequence that more bytes could complete.
func couldExtendUTF8(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	b0 := buf[0]
	want := 0
	switch {
	case b0&0xE0 == 0xC0:
		want = 2
	case b0&0xF0 == 0xE0:
		want = 3
	case b0&0xF8 == 0xF0:
		want = 4
	default:
		return false
	}
	return len(buf) < want
}

// decodeEscape handles every sequence beginning with 0x1B.
func decodeEscape(buf []byte) (*KeyEvent, int, bool) {
	if len(buf) == 1 {
		// Bare ESC: caller resolves via Decoder.Timeout after the
		// escape-completion deadline, per spec.md §4.3.
		return nil, 0, true
	}

	b1 := buf[1]

	switch b1 {
	case 0x1B: // ESC ESC <c>
		if len(buf) < 3 {
			return nil, 0, true
		}
		c := buf[2]
		if c >= 0x01 && c <= 0x1A {
			r := rune(c) + 'a' - 1
			return &KeyEvent{Code: KeyChar, Rune: r, Mods: ModAlt | ModCtrl}, 3, false
		}
		return &KeyEvent{Code: KeyChar, Rune: rune(c), Mods: ModAlt}, 3, false
	case '[':
		return decodeCSI(buf)
	case 'O':
		if len(buf) < 3 {
			return nil, 0, true
		}
		code, ok := ss3Code(buf[2])
		if !ok {
			return nil, 1, false
		}
		return &KeyEvent{Code: code}, 3, false
	default:
		if b1 >= 0x20 && b1 < 0x80 {
			return &KeyEvent{Code: KeyChar, Rune: rune(b1), Mods: ModAlt}, 2, false
		}
		return nil, 1, false
	}
}

func ss3Code(b byte) (Code, bool) {
	switch b {
	case 'P':
		return KeyF1, true
	case 'Q':
		return KeyF2, true
	case 'R':
		return KeyF3, true
	case 'S':
		return KeyF4, true
	default:
		return 0, false
	}
}

// decodeCSI handles sequences beginning "ESC [".
func decodeCSI(buf []byte) (*KeyEvent, int, bool) {
	if len(buf) < 3 {
		return nil, 0, true
	}

	switch buf[2] {
	case 'A':
		return &KeyEvent{Code: KeyUp}, 3, false
	case 'B':
		return &KeyEvent{Code: KeyDown}, 3, false
	case 'C':
		return &KeyEvent{Code: KeyRight}, 3, false
	case 'D':
		return &KeyEvent{Code: KeyLeft}, 3, false
	case 'H':
		return &KeyEvent{Code: KeyHome}, 3, false
	case 'F':
		return &KeyEvent{Code: KeyEnd}, 3, false
	}

	if buf[2] < '0' || buf[2] > '9' {
		// A complete CSI sequence with an unrecognized final byte (such as
		// ESC [ Z) is dropped whole, so none of its bytes become key events.
		if buf[2] >= 0x40 && buf[2] <= 0x7E {
			return nil, 3, false
		}
		// Any other byte cannot continue a CSI sequence: drop the lead
		// ESC and let the next pass re-interpret starting at '['.
		return nil, 1, false
	}

	return decodeCSINumeric(buf)
}

// decodeCSINumeric handles "ESC [ <digits> [; <digits>] <final>" forms:
// the tilde-terminated Home/Insert/Delete/End/PageUp/PageDown table and the
// "1;<mod><letter>" modified-arrow form (spec.md §4.3).
func decodeCSINumeric(buf []byte) (*KeyEvent, int, bool) {
	end := -1
	for i := 2; i < len(buf); i++ {
		c := buf[i]
		if c == '~' || (c >= 'A' && c <= 'Z') {
			end = i
			break
		}
		if !(c >= '0' && c <= '9') && c != ';' {
			// Unexpected byte inside the numeric CSI body.
			return nil, 1, false
		}
	}
	if end == -1 {
		if len(buf) >= maxPendingCSI {
			return nil, 1, false
		}
		return nil, 0, true
	}

	body := string(buf[2:end])
	terminator := buf[end]
	consumed := end + 1

	if terminator == '~' {
		n, err := strconv.Atoi(body)
		if err != nil {
			return nil, consumed, false
		}
		code, ok := tildeCode(n)
		if !ok {
			return nil, consumed, false
		}
		return &KeyEvent{Code: code}, consumed, false
	}

	parts := strings.Split(body, ";")
	if len(parts) != 2 {
		return nil, consumed, false
	}
	modCode, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, consumed, false
	}
	code, ok := letterCode(terminator)
	if !ok {
		return nil, consumed, false
	}
	return &KeyEvent{Code: code, Mods: modFromCode(modCode)}, consumed, false
}

func tildeCode(n int) (Code, bool) {
	switch n {
	case 1:
		return KeyHome, true
	case 2:
		return KeyInsert, true
	case 3:
		return KeyDelete, true
	case 4:
		return KeyEnd, true
	case 5:
		return KeyPageUp, true
	case 6:
		return KeyPageDown, true
	default:
		return 0, false
	}
}

func letterCode(b byte) (Code, bool) {
	switch b {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	case 'H':
		return KeyHome, true
	case 'F':
		return KeyEnd, true
	default:
		return 0, false
	}
}

// modFromCode decodes the CSI modifier parameter: bit 0 (value-1 & 1) is
// Shift, bit 1 is Alt, bit 2 is Ctrl (spec.md §4.3).
func modFromCode(code int) Mod {
	bits := code - 1
	var m Mod
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}
