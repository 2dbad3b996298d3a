package writer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AmerThamer/bkv-inspector-app/ir/raw"
	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
)

type objectBuilder struct {
	doc    *semantic.Document
	cfg    Config
	table  *raw.Table
	filter bool

	fontRefs    map[*semantic.Font]raw.ObjectRef
	xobjectRefs map[string]raw.ObjectRef
}

type builtObjects struct {
	table      *raw.Table
	catalogRef raw.ObjectRef
	infoRef    *raw.ObjectRef
}

func newObjectBuilder(doc *semantic.Document, cfg Config) *objectBuilder {
	return &objectBuilder{
		doc:         doc,
		cfg:         cfg,
		table:       raw.NewTable(),
		filter:      cfg.Compression != 0,
		fontRefs:    make(map[*semantic.Font]raw.ObjectRef),
		xobjectRefs: make(map[string]raw.ObjectRef),
	}
}

func (b *objectBuilder) Build(ctx context.Context) (*builtObjects, error) {
	catalogRef := b.table.Reserve()
	pagesRef := b.table.Reserve()

	var infoRef *raw.ObjectRef
	if b.doc.Info != nil {
		if infoDict := b.buildInfo(b.doc.Info); infoDict.Len() > 0 {
			ref := b.table.Add(infoDict)
			infoRef = &ref
		}
	}

	kids := raw.NewArray()
	for _, p := range b.doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pageRef, err := b.buildPage(p, pagesRef)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", p.Index+1, err)
		}
		kids.Append(raw.Ref(pageRef))
	}

	pagesDict := raw.Dict()
	pagesDict.Set("Type", raw.Name("Pages"))
	pagesDict.Set("Count", raw.NumberInt(int64(kids.Len())))
	pagesDict.Set("Kids", kids)
	b.table.Set(pagesRef, pagesDict)

	catalogDict := raw.Dict()
	catalogDict.Set("Type", raw.Name("Catalog"))
	catalogDict.Set("Pages", raw.Ref(pagesRef))
	if b.doc.Lang != "" {
		catalogDict.Set("Lang", textString(b.doc.Lang))
	}
	b.table.Set(catalogRef, catalogDict)

	return &builtObjects{table: b.table, catalogRef: catalogRef, infoRef: infoRef}, nil
}

func (b *objectBuilder) buildInfo(info *semantic.DocumentInfo) *raw.DictObj {
	d := raw.Dict()
	set := func(key, value string) {
		if value != "" {
			d.Set(key, textString(value))
		}
	}
	set("Title", info.Title)
	set("Author", info.Author)
	set("Subject", info.Subject)
	set("Creator", info.Creator)
	set("Producer", info.Producer)
	set("Keywords", strings.Join(info.Keywords, ", "))
	if !info.CreationDate.IsZero() {
		d.Set("CreationDate", raw.Str([]byte(pdfDate(info.CreationDate))))
	}
	return d
}

func (b *objectBuilder) buildPage(p *semantic.Page, parent raw.ObjectRef) (raw.ObjectRef, error) {
	pageDict := raw.Dict()
	pageDict.Set("Type", raw.Name("Page"))
	pageDict.Set("Parent", raw.Ref(parent))
	pageDict.Set("MediaBox", rectArray(p.MediaBox))

	resDict := raw.Dict()
	procSet := raw.NewArray(raw.Name("PDF"))
	if p.Resources != nil {
		if len(p.Resources.Fonts) > 0 {
			fontDict := raw.Dict()
			for _, name := range sortedKeys(p.Resources.Fonts) {
				fontDict.Set(name, raw.Ref(b.ensureFont(p.Resources.Fonts[name])))
			}
			resDict.Set("Font", fontDict)
			procSet.Append(raw.Name("Text"))
		}
		if len(p.Resources.XObjects) > 0 {
			xoDict := raw.Dict()
			for _, name := range sortedKeys(p.Resources.XObjects) {
				ref, err := b.ensureXObject(name, p.Resources.XObjects[name])
				if err != nil {
					return raw.ObjectRef{}, err
				}
				xoDict.Set(name, raw.Ref(ref))
			}
			resDict.Set("XObject", xoDict)
			procSet.Append(raw.Name("ImageC"))
		}
	}
	resDict.Set("ProcSet", procSet)
	pageDict.Set("Resources", resDict)

	var content []byte
	for _, cs := range p.Contents {
		content = appendContent(content, cs)
	}
	contentRef, err := b.addStream(raw.Dict(), content)
	if err != nil {
		return raw.ObjectRef{}, fmt.Errorf("content stream: %w", err)
	}
	pageDict.Set("Contents", raw.Ref(contentRef))
	return b.table.Add(pageDict), nil
}

// addStream stores data as a stream object, compressing it when configured.
func (b *objectBuilder) addStream(dict *raw.DictObj, data []byte) (raw.ObjectRef, error) {
	if b.filter {
		encoded, err := deflate(data, b.cfg.Compression)
		if err != nil {
			return raw.ObjectRef{}, err
		}
		dict.Set("Filter", raw.Name("FlateDecode"))
		data = encoded
	}
	dict.Set("Length", raw.NumberInt(int64(len(data))))
	return b.table.Add(raw.NewStream(dict, data)), nil
}

func (b *objectBuilder) addFontDescriptor(fd *semantic.FontDescriptor) *raw.ObjectRef {
	if fd == nil {
		return nil
	}
	d := raw.Dict()
	d.Set("Type", raw.Name("FontDescriptor"))
	name := fd.FontName
	if name == "" {
		name = "CustomFont"
	}
	d.Set("FontName", raw.Name(name))
	flags := fd.Flags
	if flags == 0 {
		flags = 32
	}
	d.Set("Flags", raw.NumberInt(int64(flags)))
	d.Set("ItalicAngle", raw.NumberFloat(fd.ItalicAngle))
	d.Set("Ascent", raw.NumberFloat(fd.Ascent))
	d.Set("Descent", raw.NumberFloat(fd.Descent))
	d.Set("CapHeight", raw.NumberFloat(fd.CapHeight))
	stem := fd.StemV
	if stem == 0 {
		stem = 80
	}
	d.Set("StemV", raw.NumberInt(int64(stem)))
	d.Set("FontBBox", raw.NewArray(
		raw.NumberFloat(fd.FontBBox[0]),
		raw.NumberFloat(fd.FontBBox[1]),
		raw.NumberFloat(fd.FontBBox[2]),
		raw.NumberFloat(fd.FontBBox[3]),
	))
	if len(fd.FontFile) > 0 {
		streamDict := raw.Dict()
		streamDict.Set("Length1", raw.NumberInt(int64(len(fd.FontFile))))
		if streamRef, err := b.addStream(streamDict, fd.FontFile); err == nil {
			key := "FontFile2"
			if fd.FontFileType != "" {
				key = fd.FontFileType
			}
			d.Set(key, raw.Ref(streamRef))
		}
	}
	ref := b.table.Add(d)
	return &ref
}

func (b *objectBuilder) addToUnicode(font *semantic.Font) *raw.ObjectRef {
	cmap := toUnicodeCMap(font)
	if len(cmap) == 0 {
		return nil
	}
	ref, err := b.addStream(raw.Dict(), cmap)
	if err != nil {
		return nil
	}
	return &ref
}

// ensureFont writes a Type0/Identity-H font once per *semantic.Font, no
// matter how many pages reference it.
func (b *objectBuilder) ensureFont(font *semantic.Font) raw.ObjectRef {
	if ref, ok := b.fontRefs[font]; ok {
		return ref
	}
	base := font.BaseFont
	if base == "" {
		base = "CustomTT"
	}
	encoding := font.Encoding
	if encoding == "" {
		encoding = "Identity-H"
	}
	fontDict := raw.Dict()
	fontDict.Set("Type", raw.Name("Font"))
	fontDict.Set("Subtype", raw.Name("Type0"))
	fontDict.Set("BaseFont", raw.Name(base))
	fontDict.Set("Encoding", raw.Name(encoding))

	desc := font.DescendantFont
	descDict := raw.Dict()
	descDict.Set("Type", raw.Name("Font"))
	descSubtype := "CIDFontType2"
	if desc != nil && desc.Subtype != "" {
		descSubtype = desc.Subtype
	}
	descDict.Set("Subtype", raw.Name(descSubtype))
	descDict.Set("BaseFont", raw.Name(base))

	csi := semantic.CIDSystemInfo{Registry: "Adobe", Ordering: "Identity"}
	if font.CIDSystemInfo != nil {
		csi = *font.CIDSystemInfo
	} else if desc != nil {
		csi = desc.CIDSystemInfo
	}
	cs := raw.Dict()
	cs.Set("Registry", raw.Str([]byte(csi.Registry)))
	cs.Set("Ordering", raw.Str([]byte(csi.Ordering)))
	cs.Set("Supplement", raw.NumberInt(int64(csi.Supplement)))
	descDict.Set("CIDSystemInfo", cs)

	dw := 1000
	widths := font.Widths
	if desc != nil {
		if desc.DW > 0 {
			dw = desc.DW
		}
		if len(desc.W) > 0 {
			widths = desc.W
		}
		if desc.CIDToGIDMapName != "" {
			descDict.Set("CIDToGIDMap", raw.Name(desc.CIDToGIDMapName))
		}
	}
	descDict.Set("DW", raw.NumberInt(int64(dw)))
	if len(widths) > 0 {
		descDict.Set("W", widthsArray(widths))
	}
	if fd := b.addFontDescriptor(descriptorOf(desc, font)); fd != nil {
		descDict.Set("FontDescriptor", raw.Ref(*fd))
	}
	descRef := b.table.Add(descDict)
	fontDict.Set("DescendantFonts", raw.NewArray(raw.Ref(descRef)))
	if uref := b.addToUnicode(font); uref != nil {
		fontDict.Set("ToUnicode", raw.Ref(*uref))
	}
	ref := b.table.Add(fontDict)
	b.fontRefs[font] = ref
	return ref
}

func (b *objectBuilder) ensureXObject(name string, xo semantic.XObject) (raw.ObjectRef, error) {
	key := imageKey(name, xo)
	if ref, ok := b.xobjectRefs[key]; ok {
		return ref, nil
	}
	dict := raw.Dict()
	dict.Set("Type", raw.Name("XObject"))
	dict.Set("Subtype", raw.Name("Image"))
	dict.Set("Width", raw.NumberInt(int64(xo.Width)))
	dict.Set("Height", raw.NumberInt(int64(xo.Height)))
	color := "DeviceRGB"
	if xo.ColorSpace != nil && xo.ColorSpace.ColorSpaceName() != "" {
		color = xo.ColorSpace.ColorSpaceName()
	}
	dict.Set("ColorSpace", raw.Name(color))
	bpc := xo.BitsPerComponent
	if bpc == 0 {
		bpc = 8
	}
	dict.Set("BitsPerComponent", raw.NumberInt(int64(bpc)))
	if xo.Interpolate {
		dict.Set("Interpolate", raw.Bool(true))
	}
	if xo.SMask != nil {
		maskRef, err := b.ensureXObject(name+":SMask", *xo.SMask)
		if err != nil {
			return raw.ObjectRef{}, err
		}
		dict.Set("SMask", raw.Ref(maskRef))
	}
	ref, err := b.addStream(dict, xo.Data)
	if err != nil {
		return raw.ObjectRef{}, fmt.Errorf("image %s: %w", name, err)
	}
	b.xobjectRefs[key] = ref
	return ref, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
