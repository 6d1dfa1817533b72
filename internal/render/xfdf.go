package render

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

const xfdfNamespace = "http://ns.adobe.com/xfdf/"

type xfdfDoc struct {
	XMLName xml.Name    `xml:"xfdf"`
	Xmlns   string      `xml:"xmlns,attr"`
	F       *xfdfHref   `xml:"f,omitempty"`
	Fields  []xfdfField `xml:"fields>field"`
}

type xfdfField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type xfdfHref struct {
	Href string `xml:"href,attr"`
}

// EncodeXFDF writes fields as an XFDF document. Fields are sorted by name.
// pdfRef, when set, points the document at its template.
func EncodeXFDF(w io.Writer, pdfRef string, fields map[string]string) error {
	doc := xfdfDoc{Xmlns: xfdfNamespace}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		doc.Fields = append(doc.Fields, xfdfField{Name: name, Value: fields[name]})
	}
	if pdfRef != "" {
		doc.F = &xfdfHref{Href: pdfRef}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return eris.Wrap(err, "render: write xfdf header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return eris.Wrap(err, "render: encode xfdf")
	}
	return nil
}

// XFDFWriter saves the field data as an .xfdf file next to the requested
// output. Any PDF reader can merge it into the template, so no external
// binary is needed.
type XFDFWriter struct{}

// NewXFDFWriter creates an XFDFWriter.
func NewXFDFWriter() *XFDFWriter { return &XFDFWriter{} }

// Fill writes <outPath without extension>.xfdf.
func (x *XFDFWriter) Fill(ctx context.Context, templatePath string, fields map[string]string, outPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", eris.Wrap(err, "render: context cancelled")
	}
	if err := checkTemplate(templatePath); err != nil {
		return "", err
	}

	target := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".xfdf"
	ref, err := filepath.Abs(templatePath)
	if err != nil {
		ref = templatePath
	}

	var buf bytes.Buffer
	if err := EncodeXFDF(&buf, ref, fields); err != nil {
		return "", err
	}
	if err := ensureParent(target); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return "", eris.Wrapf(err, "render: write %s", target)
	}
	return target, nil
}
