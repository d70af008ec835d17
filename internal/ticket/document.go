package ticket

import (
	"bytes"
	"io"
	"strconv"
	"time"
)

// DefaultClientID prefixes generated job names.
const DefaultClientID = "Go AmendoClient"

// Validator inspects a document before it is rendered. A non-nil error
// aborts serialization.
type Validator func(*Document) error

// Option customizes a Document at construction.
type Option func(*options)

type options struct {
	clientID   string
	now        func() time.Time
	validators []Validator
}

// WithClientID overrides the prefix of the generated job name.
func WithClientID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.clientID = id
		}
	}
}

// WithClock overrides the time source used for the generated job name.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithValidator registers a check that runs before every serialization.
func WithValidator(v Validator) Option {
	return func(o *options) {
		if v != nil {
			o.validators = append(o.validators, v)
		}
	}
}

// Document is a job ticket under construction. It owns the element tree;
// the Files and Properties it hands out refer back into it.
type Document struct {
	Properties

	tree       tree
	root       nodeID
	runList    nodeID
	priority   nodeID
	files      []*File
	validators []Validator
}

// NewDocument creates a ticket whose root element is rootName. The root
// carries a generated Name attribute of the form "<client id>-<unix time>"
// and an empty RunList as its first child.
func NewDocument(rootName string, opts ...Option) *Document {
	o := options{clientID: DefaultClientID, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Document{priority: noNode, validators: o.validators}
	d.root = d.tree.newElement(rootName)
	d.tree.setAttr(d.root, "Name", o.clientID+"-"+strconv.FormatInt(o.now().Unix(), 10))
	d.runList = d.tree.appendChild(d.root, d.tree.newElement("RunList"))
	d.tree.setAttr(d.runList, "ID", "")
	d.Properties = newProperties(&d.tree, d.root)
	return d
}

// Name returns the job name attribute.
func (d *Document) Name() string {
	name, _ := d.tree.attr(d.root, "Name")
	return name
}

// SetJobName overwrites the job name attribute.
func (d *Document) SetJobName(name string) {
	d.tree.setAttr(d.root, "Name", name)
}

// SetJobPriority sets the job priority. The server expects 1-100; the value
// is written as given. The Priority element is created directly after
// RunList on first use and updated in place afterwards.
func (d *Document) SetJobPriority(priority int) {
	if d.priority == noNode {
		d.priority = d.tree.insertBefore(d.root, d.tree.newElement("Priority"), d.tree.nextSibling(d.runList))
	}
	d.tree.setText(d.priority, strconv.Itoa(priority))
}

// Priority returns the job priority and whether one was set.
func (d *Document) Priority() (int, bool) {
	if d.priority == noNode {
		return 0, false
	}
	p, err := strconv.Atoi(d.tree.nodes[d.priority].text)
	return p, err == nil
}

// AddFile appends a local path to the run list.
func (d *Document) AddFile(path string) *File {
	return d.addRunListFile(KindFile, path)
}

// AddURI appends a URI to the run list.
func (d *Document) AddURI(uri string) *File {
	return d.addRunListFile(KindURI, uri)
}

// AddDownloadURI appends a URI the server downloads before processing.
func (d *Document) AddDownloadURI(uri string) *File {
	return d.addRunListFile(KindDownloadURI, uri)
}

func (d *Document) addRunListFile(kind Kind, locator string) *File {
	f := newFile(&d.tree, d.runList, kind, locator)
	d.files = append(d.files, f)
	return f
}

// RunListFiles returns the run list entries in the order they were added.
func (d *Document) RunListFiles() []*File {
	out := make([]*File, len(d.files))
	copy(out, d.files)
	return out
}

// Validate runs the registered validators in registration order.
func (d *Document) Validate() error {
	for _, v := range d.validators {
		if err := v(d); err != nil {
			return err
		}
	}
	return nil
}

// XML validates the document and renders it as a standalone, indented XML
// document.
func (d *Document) XML() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo validates the document and streams the rendered XML to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	err := encodeTree(cw, &d.tree, d.root)
	return cw.n, err
}
