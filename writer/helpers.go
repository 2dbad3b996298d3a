package writer

import (
	"bytes"
	"compress/flate"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"
	"unicode/utf16"

	"github.com/google/uuid"

	"github.com/AmerThamer/bkv-inspector-app/ir/raw"
	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
)

func pdfVersion(cfg Config) string {
	if cfg.Version == "" {
		return string(PDF17)
	}
	return string(cfg.Version)
}

// fileID returns the trailer /ID pair. Random UUIDs normally; a name-based
// UUID over the document content when the output must be reproducible.
func fileID(doc *semantic.Document, cfg Config) [2][]byte {
	id := uuid.New()
	if cfg.Deterministic {
		id = uuid.NewSHA1(uuid.NameSpaceOID, contentDigest(doc, cfg))
	}
	return [2][]byte{bytes.Clone(id[:]), bytes.Clone(id[:])}
}

func contentDigest(doc *semantic.Document, cfg Config) []byte {
	h := sha256.New()
	io.WriteString(h, pdfVersion(cfg))
	if info := doc.Info; info != nil {
		fmt.Fprintf(h, "%s|%s|%s|%s|%s|%q", info.Title, info.Author, info.Subject, info.Creator, info.Producer, info.Keywords)
	}
	fmt.Fprintf(h, "|%d", len(doc.Pages))
	for _, p := range doc.Pages {
		fmt.Fprintf(h, "|%v", p.MediaBox)
		for _, cs := range p.Contents {
			h.Write(appendContent(nil, cs))
		}
	}
	return h.Sum(nil)
}

func rectArray(r semantic.Rectangle) *raw.ArrayObj {
	return raw.NewArray(
		raw.NumberFloat(r.LLX),
		raw.NumberFloat(r.LLY),
		raw.NumberFloat(r.URX),
		raw.NumberFloat(r.URY),
	)
}

func deflate(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("flate level %d: %w", level, err)
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pdfDate formats t as a PDF date string, e.g. D:20240501083000+02'00'.
func pdfDate(t time.Time) string {
	stamp := "D:" + t.Format("20060102150405")
	_, offset := t.Zone()
	if offset == 0 {
		return stamp + "Z"
	}
	sign := byte('+')
	if offset < 0 {
		sign, offset = '-', -offset
	}
	return fmt.Sprintf("%s%c%02d'%02d'", stamp, sign, offset/3600, offset%3600/60)
}

// textString encodes s as a PDF text string: literal for ASCII, UTF-16BE
// with a byte order mark otherwise.
func textString(s string) raw.StringObj {
	if isASCII(s) {
		return raw.Str([]byte(s))
	}
	out := []byte{0xFE, 0xFF}
	for _, u := range utf16.Encode([]rune(s)) {
		out = append(out, byte(u>>8), byte(u))
	}
	return raw.HexStr(out)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// imageKey identifies an image by content so the same header image drawn
// on several pages is written once.
func imageKey(name string, xo semantic.XObject) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%dx%d|%d|%t|", name, xo.Width, xo.Height, xo.BitsPerComponent, xo.Interpolate)
	if xo.ColorSpace != nil {
		io.WriteString(h, xo.ColorSpace.ColorSpaceName())
	}
	h.Write(xo.Data)
	if xo.SMask != nil {
		io.WriteString(h, imageKey(name+":SMask", *xo.SMask))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func trailerDict(size int, catalog raw.ObjectRef, info *raw.ObjectRef, ids [2][]byte) *raw.DictObj {
	d := raw.Dict()
	d.Set("Size", raw.NumberInt(int64(size)))
	d.Set("Root", raw.Ref(catalog))
	if info != nil {
		d.Set("Info", raw.Ref(*info))
	}
	d.Set("ID", raw.NewArray(raw.HexStr(ids[0]), raw.HexStr(ids[1])))
	return d
}
