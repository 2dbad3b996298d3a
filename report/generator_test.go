package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/AmerThamer/bkv-inspector-app/ir/raw"
	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
	"github.com/AmerThamer/bkv-inspector-app/observability"
	"github.com/AmerThamer/bkv-inspector-app/writer"
)

func newTestGenerator(dir string, opts ...GeneratorOption) *Generator {
	opts = append([]GeneratorOption{
		WithGeneratorClock(fixedClock),
		WithWriterConfig(writer.Config{Deterministic: true}),
	}, opts...)
	return NewGenerator(NewRenderer(), dir, opts...)
}

func TestGenerateWritesReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Inspections")
	var logs bytes.Buffer
	g := newTestGenerator(dir, WithGeneratorLogger(observability.NewHCLogger("gen", "info", &logs)))

	path, err := g.Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if want := filepath.Join(dir, "20240506_070809_E-12.pdf"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-1.7")) || !bytes.HasSuffix(data, []byte("%%EOF\n")) {
		t.Fatalf("not a complete PDF: %q...", data[:min(len(data), 16)])
	}
	if !bytes.Contains(logs.Bytes(), []byte("report generated")) {
		t.Fatalf("log = %q", logs.String())
	}

	// A second report in the same second gets a suffix.
	second, err := g.Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if filepath.Base(second) != "20240506_070809_E-12_2.pdf" {
		t.Fatalf("second path = %q", second)
	}
}

func TestGeneratePageCountInFile(t *testing.T) {
	dir := t.TempDir()
	res, err := NewRenderer(WithClock(fixedClock)).Render(sampleData())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	path, err := newTestGenerator(dir, WithWriterConfig(writer.Config{})).Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, _ := os.ReadFile(path)
	if want := "/Count " + strconv.Itoa(res.Pages); !bytes.Contains(data, []byte(want)) {
		t.Fatalf("file lacks %q", want)
	}
}

func TestGenerateRejectsInvalidTime(t *testing.T) {
	dir := t.TempDir()
	data := sampleData()
	data.EndTime = "930"
	path, err := newTestGenerator(dir).Generate(context.Background(), data)
	if !errors.Is(err, ErrInvalidTime) || path != "" {
		t.Fatalf("Generate = %q, %v; want ErrInvalidTime", path, err)
	}
	assertEmptyDir(t, dir)
}

type failingWriter struct{ err error }

func (w failingWriter) Write(context.Context, *semantic.Document, io.Writer, writer.Config) error {
	return w.err
}

func (w failingWriter) SerializeObject(raw.ObjectRef, raw.Object) ([]byte, error) {
	return nil, w.err
}

func TestGenerateWriteFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("disk on fire")
	path, err := newTestGenerator(dir, WithWriter(failingWriter{err: boom})).Generate(context.Background(), sampleData())
	if !errors.Is(err, boom) || path != "" {
		t.Fatalf("Generate = %q, %v; want the writer error", path, err)
	}
	assertEmptyDir(t, dir)
}

type recordingTracer struct {
	spans []*recordingSpan
}

type recordingSpan struct {
	name     string
	tags     map[string]interface{}
	err      error
	finished bool
}

func (r *recordingTracer) StartSpan(ctx context.Context, name string) (context.Context, observability.Span) {
	s := &recordingSpan{name: name, tags: make(map[string]interface{})}
	r.spans = append(r.spans, s)
	return ctx, s
}

func (s *recordingSpan) SetTag(key string, value interface{}) { s.tags[key] = value }
func (s *recordingSpan) SetError(err error)                   { s.err = err }
func (s *recordingSpan) Finish()                              { s.finished = true }

func TestGenerateTracesStages(t *testing.T) {
	tracer := &recordingTracer{}
	path, err := newTestGenerator(t.TempDir(), WithTracer(tracer)).Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []string{observability.SpanRender, observability.SpanWrite, observability.SpanPersist}
	if len(tracer.spans) != len(want) {
		t.Fatalf("got %d spans, want %d", len(tracer.spans), len(want))
	}
	for i, s := range tracer.spans {
		if s.name != want[i] || !s.finished || s.err != nil {
			t.Errorf("span %d = %+v", i, s)
		}
	}
	if pages, _ := tracer.spans[0].tags[observability.MetricPages].(int); pages < 2 {
		t.Errorf("render span pages = %v", tracer.spans[0].tags[observability.MetricPages])
	}
	if got := tracer.spans[2].tags[observability.MetricOutput]; got != path {
		t.Errorf("persist span path = %v, want %s", got, path)
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("directory not empty: %v", entries)
	}
}

func TestGenerateClassicNamedAfterDriver(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(NewRenderer(WithTemplate(Classic)), dir,
		WithGeneratorClock(fixedClock),
		WithWriterConfig(writer.Config{Deterministic: true}),
	)
	path, err := g.Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if want := filepath.Join(dir, "20240506_070809_5678.pdf"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
}
