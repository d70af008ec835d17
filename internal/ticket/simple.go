package ticket

// SimpleJobTicket is a Job ticket that names the assembly line to run.
// Serialization fails with ErrTicketIncomplete until
// SetAssemblyLineReference has been called.
type SimpleJobTicket struct {
	*Document

	assemblyLine nodeID
}

// NewSimpleJobTicket creates an empty ticket with root element Job.
func NewSimpleJobTicket(opts ...Option) *SimpleJobTicket {
	s := &SimpleJobTicket{assemblyLine: noNode}
	opts = append(opts[:len(opts):len(opts)], WithValidator(s.validate))
	s.Document = NewDocument("Job", opts...)
	return s
}

// SetAssemblyLineReference sets the assembly line. The element is appended
// to the end of the job on first use and updated in place afterwards.
func (s *SimpleJobTicket) SetAssemblyLineReference(reference string) {
	if s.assemblyLine == noNode {
		s.assemblyLine = s.tree.appendChild(s.root, s.tree.newElement("AssemblyLineReference"))
	}
	s.tree.setText(s.assemblyLine, reference)
}

// AssemblyLineReference returns the assembly line and whether one was set.
func (s *SimpleJobTicket) AssemblyLineReference() (string, bool) {
	if s.assemblyLine == noNode {
		return "", false
	}
	return s.tree.nodes[s.assemblyLine].text, true
}

func (s *SimpleJobTicket) validate(*Document) error {
	if s.assemblyLine == noNode {
		return &ValidationError{Ticket: "SimpleJobTicket", Field: "AssemblyLineReference"}
	}
	return nil
}
