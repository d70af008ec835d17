package ticket_test

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"amendo/internal/ticket"
)

type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

func (n xmlNode) attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local && a.Name.Space != "xmlns" {
			return a.Value, true
		}
	}
	return "", false
}

func (n xmlNode) childNames() []string {
	names := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		names = append(names, c.XMLName.Local)
	}
	return names
}

func (n xmlNode) child(name string) (xmlNode, bool) {
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			return c, true
		}
	}
	return xmlNode{}, false
}

func (n xmlNode) all(name string) []xmlNode {
	var out []xmlNode
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			out = append(out, c)
		}
	}
	return out
}

func (n xmlNode) text() string { return strings.TrimSpace(n.Text) }

// propertyList finds the Property list named list among n's children.
func (n xmlNode) propertyList(t *testing.T, list string) xmlNode {
	t.Helper()
	var found []xmlNode
	for _, c := range n.all("Property") {
		if name, ok := c.child("Name"); ok && name.text() == list {
			found = append(found, c)
		}
	}
	if len(found) != 1 {
		t.Fatalf("expected exactly one property list %q, found %d", list, len(found))
	}
	return found[0]
}

func render(t *testing.T, doc interface{ XML() ([]byte, error) }) xmlNode {
	t.Helper()
	data, err := doc.XML()
	if err != nil {
		t.Fatalf("XML: %v", err)
	}
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		t.Fatalf("unmarshal rendered ticket: %v\n%s", err, data)
	}
	return root
}

func fixedClock() time.Time {
	return time.Unix(1700000000, 0)
}

func newTestDocument() *ticket.Document {
	return ticket.NewDocument("Job", ticket.WithClock(fixedClock))
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
