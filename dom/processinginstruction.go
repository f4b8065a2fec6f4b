package dom

// ProcessingInstruction represents a processing instruction node. The target
// is stored as the node name; the data behaves as character data.
type ProcessingInstruction Node

// AsNode returns the underlying Node.
func (pi *ProcessingInstruction) AsNode() *Node {
	return (*Node)(pi)
}

// AsCharacterData returns the CharacterData view of this node.
func (pi *ProcessingInstruction) AsCharacterData() *CharacterData {
	return (*CharacterData)(pi)
}

// NodeType returns ProcessingInstructionNode (7).
func (pi *ProcessingInstruction) NodeType() NodeType {
	return ProcessingInstructionNode
}

// Target returns the application the instruction is targeted at.
func (pi *ProcessingInstruction) Target() string {
	return pi.AsNode().nodeName
}

// Data returns the instruction content.
func (pi *ProcessingInstruction) Data() string {
	return pi.AsNode().NodeValue()
}

// SetData sets the instruction content.
func (pi *ProcessingInstruction) SetData(data string) {
	pi.AsCharacterData().SetData(data)
}

// Length returns the data length in UTF-16 code units.
func (pi *ProcessingInstruction) Length() int {
	return pi.AsCharacterData().Length()
}

// CloneNode clones this processing instruction.
func (pi *ProcessingInstruction) CloneNode(deep bool) *ProcessingInstruction {
	return (*ProcessingInstruction)(pi.AsNode().CloneNode(deep))
}

// Remove removes this node from its parent.
func (pi *ProcessingInstruction) Remove() {
	pi.AsCharacterData().Remove()
}
