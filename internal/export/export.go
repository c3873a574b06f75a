// Package export serializes generated copies for hosts that consume them out of process.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"dupe-arranger/internal/scene"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat accepts json, yaml (or yml) and msgpack.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("export: unknown format %q", s)
}

// Ext is the file extension, dot included.
func (f Format) Ext() string {
	return "." + string(f)
}

// ContentType is the MIME type used over HTTP.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatMsgpack:
		return "application/msgpack"
	}
	return "application/json"
}

// Record is one copy as written to disk or the wire.
type Record struct {
	Index    int        `json:"index" yaml:"index" msgpack:"index"`
	Name     string     `json:"name" yaml:"name" msgpack:"name"`
	Parent   string     `json:"parent,omitempty" yaml:"parent,omitempty" msgpack:"parent,omitempty"`
	Path     string     `json:"path" yaml:"path" msgpack:"path"`
	Position [3]float64 `json:"position" yaml:"position,flow" msgpack:"position"`
	Rotation [3]float64 `json:"rotation" yaml:"rotation,flow" msgpack:"rotation"`
	Scale    [3]float64 `json:"scale" yaml:"scale,flow" msgpack:"scale"`
}

// Document is a full export: the template, the mode used and every copy.
type Document struct {
	Template string   `json:"template" yaml:"template" msgpack:"template"`
	Mode     string   `json:"mode" yaml:"mode" msgpack:"mode"`
	Count    int      `json:"count" yaml:"count" msgpack:"count"`
	Copies   []Record `json:"copies" yaml:"copies" msgpack:"copies"`
}

// NewDocument wraps records with their template name and arrangement mode.
func NewDocument(template, mode string, copies []Record) Document {
	return Document{Template: template, Mode: mode, Count: len(copies), Copies: copies}
}

// FromObjects converts what a scene.Memory host recorded.
func FromObjects(objs []scene.Object) []Record {
	out := make([]Record, len(objs))
	for i, o := range objs {
		out[i] = Record{
			Index:    o.Index,
			Name:     o.Name,
			Parent:   o.Parent,
			Path:     o.Path(),
			Position: o.Transform.Position,
			Rotation: o.Transform.Rotation,
			Scale:    o.Transform.Scale,
		}
	}
	return out
}

// Encode writes doc to w in format f.
func Encode(w io.Writer, f Format, doc Document) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	case FormatMsgpack:
		err = msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("export: unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", f, err)
	}
	return nil
}

// Decode reads a document written by Encode.
func Decode(r io.Reader, f Format) (Document, error) {
	var doc Document
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&doc)
	default:
		return Document{}, fmt.Errorf("export: unknown format %q", f)
	}
	if err != nil {
		return Document{}, fmt.Errorf("export: decode %s: %w", f, err)
	}
	return doc, nil
}
