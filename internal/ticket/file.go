package ticket

// Kind identifies how a run list entry locates its resource. The kind is
// also the attribute name written on the File element.
type Kind string

const (
	KindFile        Kind = "File"
	KindURI         Kind = "Uri"
	KindDownloadURI Kind = "DownloadUri"
)

// File is one run list entry. It is created by Document.AddFile, AddURI or
// AddDownloadURI, stays in the run list for the life of the document, and
// carries its own property lists.
type File struct {
	Properties

	locator string
	kind    Kind
	element nodeID
}

func newFile(t *tree, runList nodeID, kind Kind, locator string) *File {
	element := t.newElement("File")
	t.appendChild(runList, element)
	t.setAttr(element, string(kind), locator)
	return &File{
		Properties: newProperties(t, element),
		locator:    locator,
		kind:       kind,
		element:    element,
	}
}

// Locator returns the path or URI of the entry.
func (f *File) Locator() string { return f.locator }

// Kind returns the entry kind.
func (f *File) Kind() Kind { return f.kind }
