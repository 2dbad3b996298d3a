package writer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AmerThamer/bkv-inspector-app/ir/raw"
	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
)

// ErrNoPages is returned for documents without pages.
var ErrNoPages = errors.New("document has no pages")

// freeEntry marks object 0 and any unused number in the xref table.
const freeEntry = "0000000000 65535 f \n"

type impl struct{ interceptors []Interceptor }

func (w *impl) SerializeObject(ref raw.ObjectRef, obj raw.Object) ([]byte, error) {
	b := fmt.Appendf(nil, "%d %d obj\n", ref.Num, ref.Gen)
	b = appendObject(b, obj)
	return append(b, "\nendobj\n"...), nil
}

// Write serializes doc with a classic cross-reference table. The output is
// assembled in memory and handed to out in a single write, so a failure
// never leaves a partial file behind the caller's writer.
func (w *impl) Write(ctx context.Context, doc *semantic.Document, out io.Writer, cfg Config) error {
	if doc == nil || len(doc.Pages) == 0 {
		return ErrNoPages
	}
	built, err := newObjectBuilder(doc, cfg).Build(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-" + pdfVersion(cfg) + "\n%\xE2\xE3\xCF\xD3\n")
	offsets := make(map[int]int64)
	for _, ref := range built.table.Ordered() {
		obj, _ := built.table.Get(ref)
		for _, ic := range w.interceptors {
			if err := ic.BeforeWrite(ctx, obj); err != nil {
				return err
			}
		}
		offset := int64(buf.Len())
		serialized, err := w.SerializeObject(ref, obj)
		if err != nil {
			return err
		}
		buf.Write(serialized)
		offsets[ref.Num] = offset
		for _, ic := range w.interceptors {
			if err := ic.AfterWrite(ctx, obj, int64(len(serialized))); err != nil {
				return err
			}
		}
	}

	size := built.table.Size()
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", size)
	for i := range size {
		if off, ok := offsets[i]; ok && i > 0 {
			fmt.Fprintf(&buf, "%010d 00000 n \n", off)
		} else {
			buf.WriteString(freeEntry)
		}
	}
	trailer := trailerDict(size, built.catalogRef, built.infoRef, fileID(doc, cfg))
	buf.WriteString("trailer\n")
	buf.Write(appendObject(nil, trailer))
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	if err := ctx.Err(); err != nil {
		return err
	}
	_, err = out.Write(buf.Bytes())
	return err
}
