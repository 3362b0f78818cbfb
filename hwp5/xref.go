package hwp5

import (
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/tsawler/hwp/record"
)

// bodyWindow bounds the forward scan for note and memo bodies.
const bodyWindow = 50

var urlPrefixes = []string{"http://", "https://", "www.", "mailto:"}

// decodeUTF16LE decodes little-endian UTF-16 text. Unpaired surrogates
// become U+FFFD.
func decodeUTF16LE(b []byte) string {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

// hyperlinkURL extracts the target of a hyperlink control header. The
// command string is a length-prefixed UTF-16 string at offset 9; it is
// unescaped and cut at the first unescaped ';'.
func hyperlinkURL(payload []byte) (string, bool) {
	if len(payload) < 11 {
		return "", false
	}
	strLen := int(unitAt(payload, 9))
	if strLen == 0 || 11+strLen*2 > len(payload) {
		return "", false
	}

	url := unescapeCommand(decodeUTF16LE(payload[11 : 11+strLen*2]))
	for _, prefix := range urlPrefixes {
		if strings.HasPrefix(url, prefix) {
			return url, true
		}
	}
	return "", false
}

func unescapeCommand(cmd string) string {
	var sb strings.Builder
	runes := []rune(cmd)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			switch next := runes[i+1]; next {
			case ':', '?', ';':
				sb.WriteRune(next)
				i++
				continue
			}
		}
		if r == ';' {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// noteBody returns the text of the note whose control header is at index
// ctrl: paragraphs nested below it, within the scan window.
func noteBody(recs record.Arena, ctrl int) string {
	if ctrl < 0 || ctrl >= len(recs) {
		return ""
	}
	level := recs[ctrl].Level
	end := min(ctrl+bodyWindow, len(recs))

	var parts []string
	for i := ctrl + 1; i < end; i++ {
		rec := recs[i]
		if rec.Level <= level {
			break
		}
		if rec.Tag == record.TagParaText {
			parts = appendTrimmed(parts, plainDecoder.decode(rec.Payload, nil))
		}
	}
	return strings.Join(parts, " ")
}

// memoBody returns the text under the MEMO_LIST record at index list.
func memoBody(recs record.Arena, list int) string {
	if list < 0 || list >= len(recs) {
		return ""
	}
	level := recs[list].Level
	end := min(list+bodyWindow, len(recs))

	var parts []string
	for i := list + 1; i < end; i++ {
		rec := recs[i]
		if rec.Level < level || (rec.Tag == record.TagMemoList && rec.Level <= level) {
			break
		}
		if rec.Tag == record.TagParaText {
			parts = appendTrimmed(parts, plainDecoder.decode(rec.Payload, nil))
		}
	}
	return strings.Join(parts, " ")
}

func appendTrimmed(parts []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		parts = append(parts, s)
	}
	return parts
}
