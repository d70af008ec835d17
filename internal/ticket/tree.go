package ticket

// nodeID indexes a node in a tree arena.
type nodeID int

const noNode nodeID = -1

type attr struct {
	name  string
	value string
}

type node struct {
	name     string
	attrs    []attr
	text     string
	parent   nodeID
	children []nodeID
}

// tree is an append-only arena of element nodes. Nodes are never freed;
// handles stay valid for the lifetime of the tree.
type tree struct {
	nodes []node
}

func (t *tree) newElement(name string) nodeID {
	t.nodes = append(t.nodes, node{name: name, parent: noNode})
	return nodeID(len(t.nodes) - 1)
}

func (t *tree) appendChild(parent, child nodeID) nodeID {
	return t.insertBefore(parent, child, noNode)
}

// insertBefore places child under parent directly before ref. A ref of
// noNode, or one that is not a child of parent, appends.
func (t *tree) insertBefore(parent, child, ref nodeID) nodeID {
	p := &t.nodes[parent]
	pos := len(p.children)
	if ref != noNode {
		for i, id := range p.children {
			if id == ref {
				pos = i
				break
			}
		}
	}
	p.children = append(p.children, noNode)
	copy(p.children[pos+1:], p.children[pos:])
	p.children[pos] = child
	t.nodes[child].parent = parent
	return child
}

func (t *tree) firstChild(id nodeID) nodeID {
	children := t.nodes[id].children
	if len(children) == 0 {
		return noNode
	}
	return children[0]
}

func (t *tree) nextSibling(id nodeID) nodeID {
	parent := t.nodes[id].parent
	if parent == noNode {
		return noNode
	}
	siblings := t.nodes[parent].children
	for i, sib := range siblings {
		if sib == id && i+1 < len(siblings) {
			return siblings[i+1]
		}
	}
	return noNode
}

func (t *tree) setAttr(id nodeID, name, value string) {
	n := &t.nodes[id]
	for i := range n.attrs {
		if n.attrs[i].name == name {
			n.attrs[i].value = value
			return
		}
	}
	n.attrs = append(n.attrs, attr{name: name, value: value})
}

func (t *tree) attr(id nodeID, name string) (string, bool) {
	for _, a := range t.nodes[id].attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

func (t *tree) setText(id nodeID, text string) {
	t.nodes[id].text = text
}

// appendTextElement creates <name>text</name> as the last child of parent.
func (t *tree) appendTextElement(parent nodeID, name, text string) nodeID {
	child := t.newElement(name)
	t.setText(child, text)
	return t.appendChild(parent, child)
}
