// Package drawio is the diagram-file collaborator named by spec.md §6: an
// XML document of mxCell elements, each carrying an id, optional
// parent/source/target, a ";"-delimited style string, a value, and a
// nested geometry child. It is explicitly out-of-core (spec §1) but wires
// the pipeline end to end.
package drawio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Cell is one mxCell element.
type Cell struct {
	ID     string
	Parent string
	Source string
	Target string
	Value  string

	Tags  map[string]bool   // bare style tags, e.g. "edgeLabel"
	Style map[string]string // key=value style pairs

	X, Y, Width, Height float64
	HasGeometry         bool

	IsEdge bool
}

// HasTag reports whether the cell's style carries the bare tag name.
func (c *Cell) HasTag(name string) bool { return c.Tags[name] }

// StyleString rebuilds the ";"-delimited style attribute from Tags and
// Style.
func (c *Cell) StyleString() string {
	var parts []string
	for tag := range c.Tags {
		parts = append(parts, tag)
	}
	for k, v := range c.Style {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ";")
}

// parseStyle splits a ";"-delimited style attribute into bare tags and
// key=value pairs.
func parseStyle(style string) (tags map[string]bool, kv map[string]string) {
	tags = map[string]bool{}
	kv = map[string]string{}
	for _, part := range strings.Split(style, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i := strings.IndexByte(part, '='); i >= 0 {
			kv[part[:i]] = part[i+1:]
		} else {
			tags[part] = true
		}
	}
	return tags, kv
}

// Document is a parsed diagram file: every mxCell, in document order, plus
// the underlying XML tree for attribute-preserving round-trip editing.
type Document struct {
	xml   *etree.Document
	root  *etree.Element
	Cells []*Cell
}

// Read parses a diagram file's mxCell elements.
func Read(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("drawio: %s: %w", path, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("drawio: %s: empty document", path)
	}

	d := &Document{xml: doc, root: root}
	for _, el := range root.FindElements(".//mxCell") {
		d.Cells = append(d.Cells, cellFromElement(el))
	}
	return d, nil
}

func cellFromElement(el *etree.Element) *Cell {
	c := &Cell{
		ID:     el.SelectAttrValue("id", ""),
		Parent: el.SelectAttrValue("parent", ""),
		Source: el.SelectAttrValue("source", ""),
		Target: el.SelectAttrValue("target", ""),
		Value:  el.SelectAttrValue("value", ""),
		IsEdge: el.SelectAttrValue("edge", "") == "1",
	}
	c.Tags, c.Style = parseStyle(el.SelectAttrValue("style", ""))

	if geo := el.SelectElement("mxGeometry"); geo != nil {
		c.HasGeometry = true
		c.X = parseFloat(geo.SelectAttrValue("x", "0"))
		c.Y = parseFloat(geo.SelectAttrValue("y", "0"))
		c.Width = parseFloat(geo.SelectAttrValue("width", "0"))
		c.Height = parseFloat(geo.SelectAttrValue("height", "0"))
	}
	return c
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// IsTerm reports whether c represents a term node: a vertex (non-edge) cell
// without the edgeLabel tag, per spec §4.F.
func (c *Cell) IsTerm() bool {
	return !c.IsEdge && !c.HasTag("edgeLabel")
}

// IsRelationship reports whether c represents a relationship: an edgeLabel
// cell (whose value is promoted onto its parent), or an edge cell carrying
// value+source+target directly.
func (c *Cell) IsRelationship() bool {
	if c.HasTag("edgeLabel") {
		return true
	}
	return c.IsEdge && c.Value != "" && c.Source != "" && c.Target != ""
}

// New builds an empty Document ready to accept cells via AddCell, for the
// diagram-writer direction (RDF → diagram).
func New() *Document {
	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := xml.CreateElement("mxGraphModel")
	rootCell := root.CreateElement("root")
	return &Document{xml: xml, root: rootCell}
}

// AddCell appends a vertex or edge cell and its XML element.
func (d *Document) AddCell(c *Cell) {
	d.Cells = append(d.Cells, c)
	el := d.root.CreateElement("mxCell")
	el.CreateAttr("id", c.ID)
	if c.Parent != "" {
		el.CreateAttr("parent", c.Parent)
	}
	if c.Value != "" {
		el.CreateAttr("value", c.Value)
	}
	el.CreateAttr("style", c.StyleString())
	if c.IsEdge {
		el.CreateAttr("edge", "1")
		el.CreateAttr("source", c.Source)
		el.CreateAttr("target", c.Target)
	} else {
		el.CreateAttr("vertex", "1")
	}
	if c.HasGeometry {
		geo := el.CreateElement("mxGeometry")
		geo.CreateAttr("x", strconv.FormatFloat(c.X, 'f', 2, 64))
		geo.CreateAttr("y", strconv.FormatFloat(c.Y, 'f', 2, 64))
		geo.CreateAttr("width", strconv.FormatFloat(c.Width, 'f', 2, 64))
		geo.CreateAttr("height", strconv.FormatFloat(c.Height, 'f', 2, 64))
		geo.CreateAttr("as", "geometry")
	}
}

// Write serializes the document to path.
func (d *Document) Write(path string) error {
	d.xml.Indent(2)
	if err := d.xml.WriteToFile(path); err != nil {
		return fmt.Errorf("drawio: %s: %w", path, err)
	}
	return nil
}
