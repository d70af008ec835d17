package ticket

import (
	"encoding/xml"
	"fmt"
	"io"
)

const xmlHeader = `<?xml version="1.0" standalone="yes"?>` + "\n"

func encodeTree(w io.Writer, t *tree, root nodeID) error {
	if _, err := io.WriteString(w, xmlHeader); err != nil {
		return fmt.Errorf("write xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := encodeNode(enc, t, root); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flush xml: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write xml: %w", err)
	}
	return nil
}

func encodeNode(enc *xml.Encoder, t *tree, id nodeID) error {
	n := &t.nodes[id]
	start := xml.StartElement{Name: xml.Name{Local: n.name}}
	for _, a := range n.attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.name}, Value: a.value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("encode <%s>: %w", n.name, err)
	}
	if n.text != "" {
		if err := enc.EncodeToken(xml.CharData(n.text)); err != nil {
			return fmt.Errorf("encode <%s> text: %w", n.name, err)
		}
	}
	for _, child := range n.children {
		if err := encodeNode(enc, t, child); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("encode </%s>: %w", n.name, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
