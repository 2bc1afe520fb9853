// Package filler is the output boundary: it consumes flat field maps and
// produces filled document bytes. The core hands over physical field
// identifiers only; it never leaks chunks or logical cells here.
package filler

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/username/taxformfill/src/models"
	secvalidation "github.com/username/taxformfill/src/security/validation"
)

// FieldResult records whether one field was written into the document.
type FieldResult struct {
	Field   string `json:"field"`
	Written bool   `json:"written"`
	Reason  string `json:"reason,omitempty"`
}

// FilledDocument is one produced document: the instance it belongs to, the
// physical template it targets, the filled bytes and per-field outcomes.
type FilledDocument struct {
	InstanceID string
	TemplateID string
	Bytes      []byte
	Fields     []FieldResult
}

// Filler fills one document instance from a field map.
type Filler interface {
	Fill(instanceID string, fields models.FieldMap) (FilledDocument, error)
}

// TemplateID strips the numeric overflow suffix from a document-instance
// identifier: "f8949_2" targets the same physical template as "f8949".
func TemplateID(instanceID string) string {
	if i := strings.LastIndex(instanceID, "_"); i > 0 {
		if _, err := strconv.Atoi(instanceID[i+1:]); err == nil {
			return instanceID[:i]
		}
	}
	return instanceID
}

// FDFFiller serializes field maps as FDF (Forms Data Format), which
// external PDF tooling merges into the fillable template. templatesDir
// is where the /F entry points the tooling at the blank template PDFs.
type FDFFiller struct {
	templatesDir string
}

func NewFDFFiller(templatesDir string) *FDFFiller {
	return &FDFFiller{templatesDir: templatesDir}
}

func (f *FDFFiller) Fill(instanceID string, fields models.FieldMap) (FilledDocument, error) {
	if len(fields) == 0 {
		return FilledDocument{}, fmt.Errorf("fdf filler: no fields to fill for %s", instanceID)
	}

	templateID := TemplateID(instanceID)
	doc := FilledDocument{InstanceID: instanceID, TemplateID: templateID}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b bytes.Buffer
	b.WriteString("%FDF-1.2\n1 0 obj\n<< /FDF << /Fields [\n")
	for _, name := range names {
		text, ok := formatValue(fields[name])
		if !ok {
			doc.Fields = append(doc.Fields, FieldResult{
				Field:  name,
				Reason: fmt.Sprintf("unsupported value type %T", fields[name]),
			})
			continue
		}
		fmt.Fprintf(&b, "<< /T (%s) /V (%s) >>\n", escapeFDF(name), escapeFDF(text))
		doc.Fields = append(doc.Fields, FieldResult{Field: name, Written: true})
	}
	fmt.Fprintf(&b, "] /F (%s.pdf) >> >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%%%EOF\n", path.Join(f.templatesDir, templateID))

	doc.Bytes = b.Bytes()
	return doc, nil
}

func formatValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return secvalidation.StripUnprintable(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', 2, 64), true
	default:
		return "", false
	}
}

// escapeFDF escapes the characters with special meaning inside FDF string
// literals.
func escapeFDF(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
