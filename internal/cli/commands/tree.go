package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/soveckyFonarik/just-db/internal/cli/output"
	"github.com/soveckyFonarik/just-db/pkg/ast"
	"gopkg.in/yaml.v3"
)

// treeNode is an ordered, display-only view of an AST node.
type treeNode struct {
	Type   string
	Fields []treeField
}

type treeField struct {
	Name  string
	Value any // scalar, *treeNode or []any
}

// describe converts an AST value into treeNodes, dropping nil pointers,
// empty strings and empty slices.
func describe(v any) any {
	return describeValue(reflect.ValueOf(v))
}

func describeValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return describeValue(v.Elem())
	case reflect.Struct:
		n := &treeNode{Type: v.Type().Name()}
		for i := range v.NumField() {
			f := v.Type().Field(i)
			if !f.IsExported() {
				continue
			}
			value := describeValue(v.Field(i))
			if value == nil || value == "" {
				continue
			}
			n.Fields = append(n.Fields, treeField{Name: snakeCase(f.Name), Value: value})
		}
		return n
	case reflect.Slice:
		if v.Len() == 0 {
			return nil
		}
		items := make([]any, v.Len())
		for i := range items {
			items[i] = describeValue(v.Index(i))
		}
		return items
	case reflect.String:
		return v.String()
	default:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		return v.Interface()
	}
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MarshalJSON keeps field order and adds a "type" key.
func (n *treeNode) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	typ, err := json.Marshal(n.Type)
	if err != nil {
		return nil, err
	}
	buf.Write(typ)
	for _, f := range n.Fields {
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.WriteString(strconv.Quote(f.Name))
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML keeps field order and adds a "type" key.
func (n *treeNode) MarshalYAML() (any, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, v any) error {
		var value yaml.Node
		if err := value.Encode(v); err != nil {
			return err
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, &value)
		return nil
	}
	if err := add("type", n.Type); err != nil {
		return nil, err
	}
	for _, f := range n.Fields {
		if err := add(f.Name, f.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// renderStatement prints one statement as an indented tree.
func renderStatement(r *output.Renderer, index int, stmt ast.Query) {
	r.Println(r.Styles().Header2.Render(fmt.Sprintf("Statement %d: %s", index, ast.Kind(stmt))))

	root, ok := describe(stmt).(*treeNode)
	if !ok {
		return
	}
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedLight)
	l.AppendItem(r.Styles().Keyword.Render(root.Type))
	l.Indent()
	appendFields(l, root)
	r.Println(l.Render())
}

func appendFields(l list.Writer, n *treeNode) {
	for _, f := range n.Fields {
		switch v := f.Value.(type) {
		case *treeNode:
			l.AppendItem(f.Name + ": " + v.Type)
			if len(v.Fields) > 0 {
				l.Indent()
				appendFields(l, v)
				l.UnIndent()
			}
		case []any:
			l.AppendItem(f.Name)
			l.Indent()
			for _, item := range v {
				appendItem(l, item)
			}
			l.UnIndent()
		default:
			l.AppendItem(f.Name + ": " + scalarText(v))
		}
	}
}

func appendItem(l list.Writer, item any) {
	n, ok := item.(*treeNode)
	if !ok {
		l.AppendItem(scalarText(item))
		return
	}
	l.AppendItem(n.Type)
	if len(n.Fields) > 0 {
		l.Indent()
		appendFields(l, n)
		l.UnIndent()
	}
}

func scalarText(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}
