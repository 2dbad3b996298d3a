package writer

import (
	"bytes"
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/AmerThamer/bkv-inspector-app/ir/raw"
	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
)

// maxBFChar is the per-block entry limit for bfchar sections.
const maxBFChar = 100

const cmapHeader = `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo << /Registry (%s) /Ordering (%s) /Supplement %d >> def
/CMapName /%s def
/CMapType 2 def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
`

const cmapFooter = "endcmap\nCMapName currentdict /CMap defineresource pop\nend\nend\n"

// toUnicodeCMap maps every CID the font was drawn with back to its text so
// the PDF stays searchable and copyable. Nil when nothing was drawn.
func toUnicodeCMap(font *semantic.Font) []byte {
	if font == nil || len(font.ToUnicode) == 0 {
		return nil
	}
	csi := semantic.CIDSystemInfo{Registry: "Adobe", Ordering: "Identity"}
	if font.CIDSystemInfo != nil {
		csi.Registry = cmp.Or(font.CIDSystemInfo.Registry, csi.Registry)
		csi.Ordering = cmp.Or(font.CIDSystemInfo.Ordering, csi.Ordering)
		csi.Supplement = font.CIDSystemInfo.Supplement
	}
	name := strings.ReplaceAll(cmp.Or(font.BaseFont, "ToUnicode"), " ", "") + "-UTF16"

	var b bytes.Buffer
	fmt.Fprintf(&b, cmapHeader, csi.Registry, csi.Ordering, csi.Supplement, name)
	cids := slices.Sorted(maps.Keys(font.ToUnicode))
	for chunk := range slices.Chunk(cids, maxBFChar) {
		fmt.Fprintf(&b, "%d beginbfchar\n", len(chunk))
		for _, cid := range chunk {
			fmt.Fprintf(&b, "<%04X> <", cid)
			for _, u := range utf16.Encode(font.ToUnicode[cid]) {
				fmt.Fprintf(&b, "%04X", u)
			}
			b.WriteString(">\n")
		}
		b.WriteString("endbfchar\n")
	}
	b.WriteString(cmapFooter)
	return b.Bytes()
}

// widthsArray encodes glyph widths as a W array of "first last width" runs,
// one run per stretch of consecutive CIDs sharing a width.
func widthsArray(widths map[int]int) *raw.ArrayObj {
	arr := raw.NewArray()
	cids := slices.Sorted(maps.Keys(widths))
	for i := 0; i < len(cids); {
		w := widths[cids[i]]
		j := i
		for j+1 < len(cids) && cids[j+1] == cids[j]+1 && widths[cids[j+1]] == w {
			j++
		}
		arr.Append(raw.NumberInt(int64(cids[i])))
		arr.Append(raw.NumberInt(int64(cids[j])))
		arr.Append(raw.NumberInt(int64(w)))
		i = j + 1
	}
	return arr
}

func descriptorOf(cid *semantic.CIDFont, font *semantic.Font) *semantic.FontDescriptor {
	if cid != nil && cid.Descriptor != nil {
		return cid.Descriptor
	}
	if font != nil {
		return font.Descriptor
	}
	return nil
}
