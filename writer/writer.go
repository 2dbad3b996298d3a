// Package writer serializes a semantic document into PDF bytes.
package writer

import (
	"context"
	"io"

	"github.com/AmerThamer/bkv-inspector-app/ir/raw"
	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
)

type PDFVersion string

const (
	PDF17 PDFVersion = "1.7"
)

// Config controls serialization. Compression is a compress/flate level
// applied to every stream; 0 writes streams uncompressed. Deterministic
// derives the file ID from the content so equal documents give equal bytes.
type Config struct {
	Version       PDFVersion
	Compression   int
	Deterministic bool
}

type Writer interface {
	Write(ctx context.Context, doc *semantic.Document, w io.Writer, cfg Config) error
	SerializeObject(ref raw.ObjectRef, obj raw.Object) ([]byte, error)
}

// Interceptor observes objects as they are written.
type Interceptor interface {
	BeforeWrite(ctx context.Context, obj raw.Object) error
	AfterWrite(ctx context.Context, obj raw.Object, bytesWritten int64) error
}

type WriterBuilder struct{ interceptors []Interceptor }

func (b *WriterBuilder) WithInterceptor(i Interceptor) *WriterBuilder {
	b.interceptors = append(b.interceptors, i)
	return b
}
func (b *WriterBuilder) Build() Writer { return &impl{interceptors: b.interceptors} }

// New returns a Writer without interceptors.
func New() Writer { return &impl{} }
