package ticket

// Type discriminators carried in the xsi:type attribute of property elements.
const (
	TypePropertyString  = "PropertyString"
	TypePropertyBoolean = "PropertyBoolean"
	TypePropertyInteger = "PropertyInteger"
	TypePropertyFloat   = "PropertyFloat"
	TypePropertyList    = "PropertyList"
)

const (
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
	xsiTypeAttr  = "xsi:type"
	xsiNSAttr    = "xmlns:xsi"
)

// Properties attaches named lists of typed properties to one element of a
// ticket. The zero value is not usable; Documents and Files carry one bound
// to their own element.
//
// Lists are created on first use and inserted before the owner's current
// first child, so lists appear in reverse order of first use. Properties
// inside a list keep call order and are never deduplicated: setting the same
// name twice yields two SubProperty elements.
type Properties struct {
	tree  *tree
	owner nodeID
	lists map[string]nodeID
}

func newProperties(t *tree, owner nodeID) Properties {
	return Properties{tree: t, owner: owner, lists: make(map[string]nodeID)}
}

// SetStringProperty appends a string property to the named list.
func (p *Properties) SetStringProperty(list, name, value string) {
	p.appendProperty(list, name, TypePropertyString, value)
}

// SetBooleanProperty appends a boolean property rendered as true or false.
func (p *Properties) SetBooleanProperty(list, name string, value bool) {
	p.appendProperty(list, name, TypePropertyBoolean, formatBool(value))
}

// SetIntegerProperty appends an integer property.
func (p *Properties) SetIntegerProperty(list, name string, value int) {
	p.appendProperty(list, name, TypePropertyInteger, formatInt(value))
}

// SetFloatProperty appends a float property. See FormatFloat for the text form.
func (p *Properties) SetFloatProperty(list, name string, value float64) {
	p.appendProperty(list, name, TypePropertyFloat, FormatFloat(value))
}

// PropertyLists returns the list names in document order.
func (p *Properties) PropertyLists() []string {
	var names []string
	for _, child := range p.tree.nodes[p.owner].children {
		n := p.tree.nodes[child]
		if n.name != "Property" {
			continue
		}
		if v, _ := p.tree.attr(child, xsiTypeAttr); v != TypePropertyList {
			continue
		}
		if len(n.children) > 0 {
			names = append(names, p.tree.nodes[n.children[0]].text)
		}
	}
	return names
}

func (p *Properties) appendProperty(list, name, typ, value string) {
	listID := p.propertyList(list)
	sub := p.tree.newElement("SubProperty")
	p.tree.setAttr(sub, xsiTypeAttr, typ)
	p.tree.appendTextElement(sub, "Name", name)
	p.tree.appendTextElement(sub, "Value", value)
	p.tree.appendChild(listID, sub)
}

func (p *Properties) propertyList(list string) nodeID {
	if id, ok := p.lists[list]; ok {
		return id
	}
	id := p.tree.newElement("Property")
	p.tree.insertBefore(p.owner, id, p.tree.firstChild(p.owner))
	p.tree.setAttr(id, xsiNSAttr, xsiNamespace)
	p.tree.setAttr(id, xsiTypeAttr, TypePropertyList)
	p.tree.appendTextElement(id, "Name", list)
	p.lists[list] = id
	return id
}
