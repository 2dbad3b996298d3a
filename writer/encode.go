package writer

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/AmerThamer/bkv-inspector-app/ir/raw"
	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
)

const hexDigits = "0123456789ABCDEF"

// nameDelims are the regular characters that still need #xx in a name.
const nameDelims = "()<>[]{}/%#"

// appendObject appends the PDF syntax for o. Dictionary keys are sorted so
// equal objects serialize to equal bytes.
func appendObject(dst []byte, o raw.Object) []byte {
	switch v := o.(type) {
	case raw.NameObj:
		return appendName(dst, v.Value())
	case raw.NumberObj:
		if v.IsInteger() {
			return strconv.AppendInt(dst, v.Int(), 10)
		}
		return appendNumber(dst, v.Float())
	case raw.BoolObj:
		return strconv.AppendBool(dst, v.Value())
	case raw.StringObj:
		if v.IsHex() {
			return appendHex(dst, v.Value())
		}
		return appendLiteral(dst, v.Value())
	case *raw.ArrayObj:
		dst = append(dst, '[')
		for i, item := range v.Items {
			if i > 0 {
				dst = append(dst, ' ')
			}
			dst = appendObject(dst, item)
		}
		return append(dst, ']')
	case *raw.DictObj:
		dst = append(dst, "<<"...)
		for _, k := range slices.Sorted(maps.Keys(v.KV)) {
			dst = appendName(dst, k)
			dst = append(dst, ' ')
			dst = appendObject(dst, v.KV[k])
		}
		return append(dst, ">>"...)
	case *raw.StreamObj:
		dst = appendObject(dst, v.Dict)
		dst = append(dst, "\nstream\n"...)
		dst = append(dst, v.Data...)
		return append(dst, "\nendstream"...)
	case raw.RefObj:
		return append(dst, v.Ref().String()...)
	}
	return append(dst, "null"...)
}

// appendContent appends one operation per line, operands first.
func appendContent(dst []byte, cs semantic.ContentStream) []byte {
	for _, op := range cs.Operations {
		for _, operand := range op.Operands {
			dst = appendOperand(dst, operand)
			dst = append(dst, ' ')
		}
		dst = append(dst, op.Operator...)
		dst = append(dst, '\n')
	}
	return dst
}

func appendOperand(dst []byte, op semantic.Operand) []byte {
	switch v := op.(type) {
	case semantic.NumberOperand:
		return appendNumber(dst, v.Value)
	case semantic.NameOperand:
		return appendName(dst, v.Value)
	case semantic.StringOperand:
		if v.Hex {
			return appendHex(dst, v.Value)
		}
		return appendLiteral(dst, v.Value)
	case semantic.ArrayOperand:
		dst = append(dst, '[')
		for i, item := range v.Values {
			if i > 0 {
				dst = append(dst, ' ')
			}
			dst = appendOperand(dst, item)
		}
		return append(dst, ']')
	}
	return append(dst, "null"...)
}

// appendNumber writes a real in fixed notation rounded to four decimals.
// NaN and infinities become 0.
func appendNumber(dst []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(dst, '0')
	}
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		return append(dst, '0')
	}
	return strconv.AppendFloat(dst, v, 'f', -1, 64)
}

func appendName(dst []byte, name string) []byte {
	dst = append(dst, '/')
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < '!' || c > '~' || strings.IndexByte(nameDelims, c) >= 0 {
			dst = append(dst, '#', hexDigits[c>>4], hexDigits[c&0x0F])
			continue
		}
		dst = append(dst, c)
	}
	return dst
}

func appendHex(dst, b []byte) []byte {
	dst = append(dst, '<')
	for _, c := range b {
		dst = append(dst, hexDigits[c>>4], hexDigits[c&0x0F])
	}
	return append(dst, '>')
}

// appendLiteral writes b as a (...) string; bytes outside printable ASCII
// use three-digit octal escapes.
func appendLiteral(dst, b []byte) []byte {
	dst = append(dst, '(')
	for _, c := range b {
		switch c {
		case '(', ')', '\\':
			dst = append(dst, '\\', c)
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			if c < ' ' || c > '~' {
				dst = append(dst, '\\', '0'+(c>>6), '0'+((c>>3)&7), '0'+(c&7))
			} else {
				dst = append(dst, c)
			}
		}
	}
	return append(dst, ')')
}
