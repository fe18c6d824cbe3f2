package ir

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/teranos/tser/errors"
)

// Dump formats for the `tser ir` debugging command.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// dumpItem is the serialized form of an Item. Discriminated kinds are made
// explicit with kind keys so the output is readable without Go type names.
type dumpItem struct {
	Kind     string        `yaml:"kind" json:"kind"`
	Name     string        `yaml:"name" json:"name"`
	Fields   []dumpField   `yaml:"fields,omitempty" json:"fields,omitempty"`
	Values   string        `yaml:"values,omitempty" json:"values,omitempty"`
	Members  []dumpMember  `yaml:"members,omitempty" json:"members,omitempty"`
	Tagging  string        `yaml:"tagging,omitempty" json:"tagging,omitempty"`
	TagField string        `yaml:"tag_field,omitempty" json:"tag_field,omitempty"`
	Variants []dumpVariant `yaml:"variants,omitempty" json:"variants,omitempty"`
	Methods  []dumpMethod  `yaml:"methods,omitempty" json:"methods,omitempty"`
}

type dumpField struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Optional bool   `yaml:"optional,omitempty" json:"optional,omitempty"`
}

type dumpMember struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

type dumpVariant struct {
	Name   string      `yaml:"name" json:"name"`
	Type   string      `yaml:"type,omitempty" json:"type,omitempty"`
	Fields []dumpField `yaml:"fields,omitempty" json:"fields,omitempty"`
}

type dumpMethod struct {
	Name   string      `yaml:"name" json:"name"`
	Params []dumpField `yaml:"params,omitempty" json:"params,omitempty"`
	Result string      `yaml:"result,omitempty" json:"result,omitempty"`
}

// Dump serializes f as YAML or JSON. Type expressions use the TypeExpr.String notation.
func Dump(f *File, format string) ([]byte, error) {
	items := make([]dumpItem, 0, len(f.Items))
	for _, item := range f.Items {
		items = append(items, dumpOf(item))
	}

	switch format {
	case FormatYAML, "":
		return yaml.Marshal(items)
	case FormatJSON:
		out, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, errors.Newf("unknown dump format %q (supported: yaml, json)", format)
	}
}

func dumpOf(item Item) dumpItem {
	switch it := item.(type) {
	case Struct:
		return dumpItem{Kind: "struct", Name: it.Name, Fields: dumpFields(it.Fields)}
	case Enum:
		d := dumpItem{Kind: "enum", Name: it.Name}
		switch members := it.Kind.(type) {
		case IntegerMembers:
			d.Values = "integer"
			for _, m := range members {
				d.Members = append(d.Members, dumpMember{Name: m.Name, Value: m.Literal})
			}
		case StringMembers:
			d.Values = "string"
			for _, m := range members {
				d.Members = append(d.Members, dumpMember{Name: m.Name, Value: m.Value})
			}
		}
		return d
	case Union:
		d := dumpItem{Kind: "union", Name: it.Name}
		switch kind := it.Kind.(type) {
		case ExternallyTagged:
			d.Tagging = "external"
			for _, v := range kind.Variants {
				d.Variants = append(d.Variants, dumpVariant{Name: v.Name, Type: v.Type.String()})
			}
		case InternallyTagged:
			d.Tagging = "internal"
			d.TagField = kind.TagField
			for _, v := range kind.Variants {
				d.Variants = append(d.Variants, dumpVariant{Name: v.Name, Fields: dumpFields(v.Fields)})
			}
		}
		return d
	case Service:
		d := dumpItem{Kind: "service", Name: it.Name}
		for _, m := range it.Methods {
			dm := dumpMethod{Name: m.Name, Params: dumpFields(m.Params)}
			if m.Result != nil {
				dm.Result = m.Result.String()
			}
			d.Methods = append(d.Methods, dm)
		}
		return d
	default:
		return dumpItem{Kind: fmt.Sprintf("%T", item), Name: item.ItemName()}
	}
}

func dumpFields(fields []Field) []dumpField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]dumpField, len(fields))
	for i, f := range fields {
		out[i] = dumpField{Name: f.Name, Type: f.Type.String(), Optional: f.Optional}
	}
	return out
}
