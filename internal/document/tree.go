package document

import (
	"sort"
	"strings"
)

// structureNode is one entry of the rendered repository structure.
type structureNode struct {
	name     string
	children map[string]*structureNode
	isFile   bool
}

// BuildStructure renders the included files as a connector tree. Directories
// appear because an included file lives under them; entries are sorted
// lexically at every level so the rendering is deterministic.
func BuildStructure(relativePaths []string) string {
	rootNode := &structureNode{children: map[string]*structureNode{}}
	for _, relativePath := range relativePaths {
		currentNode := rootNode
		segments := strings.Split(relativePath, "/")
		for segmentIndex, segment := range segments {
			childNode, childPresent := currentNode.children[segment]
			if !childPresent {
				childNode = &structureNode{name: segment, children: map[string]*structureNode{}}
				currentNode.children[segment] = childNode
			}
			if segmentIndex == len(segments)-1 {
				childNode.isFile = true
			}
			currentNode = childNode
		}
	}

	var output strings.Builder
	writeStructureNode(&output, rootNode, "")
	return output.String()
}

func writeStructureNode(output *strings.Builder, node *structureNode, prefix string) {
	childNames := make([]string, 0, len(node.children))
	for childName := range node.children {
		childNames = append(childNames, childName)
	}
	sort.Strings(childNames)

	for childIndex, childName := range childNames {
		childNode := node.children[childName]
		isLastChild := childIndex == len(childNames)-1
		connector := "├── "
		childPrefix := prefix + "│   "
		if isLastChild {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		output.WriteString(prefix)
		output.WriteString(connector)
		output.WriteString(childNode.name)
		output.WriteString("\n")
		writeStructureNode(output, childNode, childPrefix)
	}
}
