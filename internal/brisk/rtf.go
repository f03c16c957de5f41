package brisk

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// codePages maps \ansicpg values to their single-byte decoders.
var codePages = map[int]*charmap.Charmap{
	437:  charmap.CodePage437,
	850:  charmap.CodePage850,
	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1257: charmap.Windows1257,
}

// destinations whose content is not document text.
var skipDestinations = map[string]bool{
	"fonttbl": true, "colortbl": true, "stylesheet": true, "info": true,
	"pict": true, "object": true, "header": true, "footer": true,
	"headerl": true, "headerr": true, "footerl": true, "footerr": true,
	"listtable": true, "listoverridetable": true, "rsidtbl": true,
	"generator": true, "themedata": true, "colorschememapping": true,
	"latentstyles": true, "datastore": true, "xmlnstbl": true,
}

type rtfGroup struct {
	skip bool
	uc   int
}

// RTFToText strips RTF markup and returns the plain document text.
func RTFToText(src string) string {
	var (
		out   strings.Builder
		stack []rtfGroup
		cur   = rtfGroup{uc: 1}
		cp    = charmap.Windows1252
		// pending characters to drop after a \u escape
		skipChars int
	)

	emit := func(s string) {
		if !cur.skip {
			out.WriteString(s)
		}
	}

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '{':
			stack = append(stack, cur)
			skipChars = 0
		case '}':
			if n := len(stack); n > 0 {
				cur = stack[n-1]
				stack = stack[:n-1]
			}
			skipChars = 0
		case '\r', '\n':
		case '\\':
			if i+1 >= len(src) {
				continue
			}
			next := src[i+1]
			switch {
			case next == '\\' || next == '{' || next == '}':
				i++
				if skipChars > 0 {
					skipChars--
					continue
				}
				emit(string(next))
			case next == '\'':
				if i+3 < len(src) {
					b, err := strconv.ParseUint(src[i+2:i+4], 16, 8)
					i += 3
					if err != nil {
						continue
					}
					if skipChars > 0 {
						skipChars--
						continue
					}
					emit(string(cp.DecodeByte(byte(b))))
				} else {
					i = len(src)
				}
			case next == '*':
				cur.skip = true
				i++
			case next == '~':
				emit(" ")
				i++
			case next == '_':
				emit("-")
				i++
			case next == '\n' || next == '\r':
				emit("\n")
				i++
			case isLetter(next):
				j := i + 1
				for j < len(src) && isLetter(src[j]) {
					j++
				}
				word := src[i+1 : j]
				k := j
				if k < len(src) && (src[k] == '-' || isDigit(src[k])) {
					k++
					for k < len(src) && isDigit(src[k]) {
						k++
					}
				}
				param, hasParam := 0, k > j
				if hasParam {
					param, _ = strconv.Atoi(src[j:k])
				}
				if k < len(src) && src[k] == ' ' {
					k++
				}
				i = k - 1

				switch {
				case skipDestinations[word]:
					cur.skip = true
				case word == "par" || word == "line" || word == "sect" || word == "page" || word == "row":
					emit("\n")
				case word == "tab" || word == "cell":
					emit("\t")
				case word == "emdash" || word == "endash":
					emit("-")
				case word == "lquote" || word == "rquote":
					emit("'")
				case word == "ldblquote" || word == "rdblquote":
					emit("\"")
				case word == "bullet":
					emit("•")
				case word == "uc" && hasParam:
					cur.uc = param
				case word == "u" && hasParam:
					if param < 0 {
						param += 65536
					}
					emit(string(rune(param)))
					skipChars = cur.uc
				case word == "ansicpg" && hasParam:
					if m, ok := codePages[param]; ok {
						cp = m
					}
				}
			default:
				i++
			}
		default:
			if skipChars > 0 {
				skipChars--
				continue
			}
			if !cur.skip {
				out.WriteByte(c)
			}
		}
	}
	return out.String()
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
