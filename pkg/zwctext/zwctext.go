// Package zwctext implements C9: hiding a framed payload inside ordinary
// text using zero-width Unicode code points. Each payload byte becomes four
// base-6 digits, each digit mapped to one of six invisible code points; the
// result is wrapped in START/END sentinels and either appended to the cover
// text or distributed across it at natural break points.
package zwctext

import (
	"strings"

	"nstego/pkg/stegoerr"
)

// alphabet is the ordered base-6 digit set, A[0]..A[5].
var alphabet = []rune{
	'​', // ZWSP
	'‌', // ZWNJ
	'‍', // ZWJ
	'\uFEFF', // BOM
	'⁠', // WJ
	'⁡', // FUN
}

// start/end are the three-code-point sentinel sequences of §6, built from
// the same base-6 alphabet as the data digits: A[0] A[1] A[0] and
// A[1] A[0] A[1]. Because they share the alphabet with payload data, the
// only reliable anchor they give is the position of their first
// occurrence in an otherwise zero-width-free cover; extraction therefore
// never re-locates END by search, it derives the payload length from the
// C5 frame header instead (see Extract).
var (
	start = string(alphabet[0]) + string(alphabet[1]) + string(alphabet[0])
	end   = string(alphabet[1]) + string(alphabet[0]) + string(alphabet[1])
)

var digitIndex = func() map[rune]int {
	m := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		m[r] = i
	}
	return m
}()

func isZWC(r rune) bool {
	_, ok := digitIndex[r]
	return ok
}

// insertionRunes is the set of characters after which distributed mode may
// inject code points, per §4.9.
var insertionRunes = map[rune]bool{
	'\n': true, ' ': true, '.': true, ',': true,
	';': true, ':': true, '!': true, '?': true, '\t': true,
}

// encodeBytes renders data as 4*len(data) zero-width code points, most
// significant base-6 digit first per byte.
func encodeBytes(data []byte) []rune {
	out := make([]rune, 0, 4*len(data))
	for _, v := range data {
		d3 := (v / 216) % 6
		d2 := (v / 36) % 6
		d1 := (v / 6) % 6
		d0 := v % 6
		out = append(out, alphabet[d3], alphabet[d2], alphabet[d1], alphabet[d0])
	}
	return out
}

// decodeRunes reverses encodeBytes. The input must contain a multiple of
// four zero-width code points.
func decodeRunes(rs []rune) ([]byte, error) {
	if len(rs)%4 != 0 {
		return nil, stegoerr.InvalidZwcLength("zero-width run length %d is not a multiple of four", len(rs))
	}
	out := make([]byte, len(rs)/4)
	for i := range out {
		d3 := digitIndex[rs[4*i]]
		d2 := digitIndex[rs[4*i+1]]
		d1 := digitIndex[rs[4*i+2]]
		d0 := digitIndex[rs[4*i+3]]
		out[i] = byte(216*d3 + 36*d2 + 6*d1 + d0)
	}
	return out, nil
}

// Embed wraps the zero-width encoding of framed around cover, either
// appended at the end or distributed across natural break points, and
// returns the result tagged as this package's own output.
func Embed(cover string, framed []byte, distributed bool) StegaText {
	zwc := encodeBytes(framed)
	if !distributed {
		return StegaText(appendedEmbed(cover, zwc))
	}
	return StegaText(distributedEmbed(cover, zwc))
}

func appendedEmbed(cover string, zwc []rune) string {
	var b strings.Builder
	b.WriteString(cover)
	b.WriteString(start)
	b.WriteString(string(zwc))
	b.WriteString(end)
	return b.String()
}

func distributedEmbed(cover string, zwc []rune) string {
	runes := []rune(cover)
	var points []int
	for i, r := range runes {
		if insertionRunes[r] {
			points = append(points, i+1)
		}
	}
	if len(points) == 0 {
		return appendedEmbed(cover, zwc)
	}

	chunksPerPoint := (len(zwc) + len(points) - 1) / len(points)

	var b strings.Builder
	b.WriteString(start)
	prev := 0
	zwcPos := 0
	for _, p := range points {
		b.WriteString(string(runes[prev:p]))
		if zwcPos < len(zwc) {
			take := chunksPerPoint
			if zwcPos+take > len(zwc) {
				take = len(zwc) - zwcPos
			}
			b.WriteString(string(zwc[zwcPos : zwcPos+take]))
			zwcPos += take
		}
		prev = p
	}
	b.WriteString(string(runes[prev:]))
	if zwcPos < len(zwc) {
		b.WriteString(string(zwc[zwcPos:]))
	}
	b.WriteString(end)
	return b.String()
}

// HasHiddenData implements §4.9's detection predicate: START occurs and at
// least 16 zero-width code points follow it.
func HasHiddenData(s stegaTextLike) bool {
	t := s.text()
	idx := strings.Index(t, start)
	if idx < 0 {
		return false
	}
	after := []rune(t[idx+len(start):])
	count := 0
	for _, r := range after {
		if isZWC(r) {
			count++
		}
	}
	return count >= 16
}

// ExtractZWCRun locates START and returns every zero-width code point that
// follows it, skipping any non-zero-width runes interleaved among them
// (e.g. distributed-mode cover text). It does not stop at END: END is built
// from the same alphabet as payload data, so a literal search for it could
// match inside the data itself. Callers that need an exact boundary derive
// it from the C5 frame header's declared length instead, as Extract does.
func ExtractZWCRun(s stegaTextLike) []rune {
	t := s.text()
	idx := strings.Index(t, start)
	if idx < 0 {
		return nil
	}
	rest := t[idx+len(start):]
	var out []rune
	for _, r := range rest {
		if isZWC(r) {
			out = append(out, r)
		}
	}
	return out
}

// headerZWCLen is the number of zero-width code points the 5-byte C5 frame
// header occupies: 4 per byte.
const headerZWCLen = 20

// Extract locates the hidden zero-width run and decodes it back to the
// framed byte stream, per §4.9's extraction algorithm.
func Extract(s stegaTextLike) ([]byte, error) {
	run := ExtractZWCRun(s)
	if len(run) < headerZWCLen {
		return nil, stegoerr.Truncated("fewer than %d zero-width code points follow the start sentinel", headerZWCLen)
	}

	header, err := decodeRunes(run[:headerZWCLen])
	if err != nil {
		return nil, err
	}
	bodyLen := int(header[1]) | int(header[2])<<8 | int(header[3])<<16 | int(header[4])<<24
	wantZWC := headerZWCLen + 4*bodyLen
	if len(run) < wantZWC {
		return nil, stegoerr.Truncated("declared body needs %d zero-width code points, only %d present", wantZWC, len(run))
	}

	return decodeRunes(run[:wantZWC])
}

// StripZWC removes every zero-width code point from t, regardless of
// whether START/END sentinels are present. Since both sentinels are built
// from the base-6 alphabet itself, filtering on isZWC already removes them
// along with the data digits.
func StripZWC(s stegaTextLike) string {
	var b strings.Builder
	for _, r := range s.text() {
		if isZWC(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// VisualizedToken is one code point of t annotated with a symbolic name, for
// debugging output.
type VisualizedToken struct {
	Rune rune
	Name string
}

var symbolicNames = map[rune]string{
	'​': "ZWSP",
	'‌': "ZWNJ",
	'‍': "ZWJ",
	'\uFEFF': "BOM",
	'⁠': "WJ",
	'⁡': "FUN",
}

// Visualize annotates every zero-width code point in t with its symbolic
// name, leaving ordinary runes unannotated. START/END are three-code-point
// sequences drawn from the same alphabet as the data digits, so they are
// matched as runs rather than single runes; the first match found scanning
// left to right wins, which is exact for START (no zero-width rune can
// precede the real sentinel in a well-formed cover) and advisory for END,
// same as CapacityHeuristic.
func Visualize(s stegaTextLike) []VisualizedToken {
	runes := []rune(s.text())
	startRunes := []rune(start)
	endRunes := []rune(end)

	var out []VisualizedToken
	for i := 0; i < len(runes); {
		if runMatches(runes, i, startRunes) {
			out = append(out, VisualizedToken{Rune: runes[i], Name: "START"})
			i += len(startRunes)
			continue
		}
		if runMatches(runes, i, endRunes) {
			out = append(out, VisualizedToken{Rune: runes[i], Name: "END"})
			i += len(endRunes)
			continue
		}
		r := runes[i]
		if name, ok := symbolicNames[r]; ok {
			out = append(out, VisualizedToken{Rune: r, Name: name})
		} else {
			out = append(out, VisualizedToken{Rune: r})
		}
		i++
	}
	return out
}

func runMatches(runes []rune, at int, pattern []rune) bool {
	if at+len(pattern) > len(runes) {
		return false
	}
	for i, r := range pattern {
		if runes[at+i] != r {
			return false
		}
	}
	return true
}

// CapacityHeuristic implements §4.9's (questionable, intentionally
// preserved) capacity estimate: max(floor(|cover|*0.1), |cover|) always
// reduces to |cover| for non-empty input, producing a very loose ceiling.
// The result is advisory only; Embed never refuses to exceed it.
func CapacityHeuristic(cover string) int64 {
	n := int64(len([]rune(cover)))
	loose := n / 10
	positions := loose
	if n > positions {
		positions = n
	}
	positions -= 26
	if positions < 0 {
		positions = 0
	}
	return positions / 4
}
