package blocks

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// Block types
const (
	TypeText    = "text"
	TypeHeader  = "header"
	TypeSection = "section"
)

var (
	// ErrUnknownType is returned for a block type with no renderer
	ErrUnknownType = errors.New("unknown block type")
	// ErrInvalidAttributes is returned when block data fails validation
	ErrInvalidAttributes = errors.New("invalid block attributes")
	// ErrNestingNotAllowed is returned when a block cannot hold a child type
	ErrNestingNotAllowed = errors.New("block nesting not allowed")
)

// Mode selects which markup a block renders
type Mode int

const (
	// ModeSave renders the markup persisted and served to visitors
	ModeSave Mode = iota
	// ModePreview renders the editor preview
	ModePreview
)

// Node is a block with its inner blocks, ready to render
type Node struct {
	ID       uint
	Type     string
	Data     string // attribute JSON
	Children []*Node
}

// Types lists the registered block types
func Types() []string {
	return []string{TypeText, TypeHeader, TypeSection}
}

// IsKnownType reports whether blockType has a renderer
func IsKnownType(blockType string) bool {
	switch blockType {
	case TypeText, TypeHeader, TypeSection:
		return true
	}
	return false
}

// AllowsChildren reports whether blockType renders inner blocks
func AllowsChildren(blockType string) bool {
	return blockType == TypeHeader || blockType == TypeSection
}

// CheckNesting returns an error when parentType cannot contain childType.
// Headers and sections hold inner blocks, but a header never holds a section.
func CheckNesting(parentType, childType string) error {
	if !IsKnownType(childType) {
		return fmt.Errorf("%w: %s", ErrUnknownType, childType)
	}
	if !AllowsChildren(parentType) {
		return fmt.Errorf("%w: %s blocks have no inner blocks", ErrNestingNotAllowed, parentType)
	}
	if parentType == TypeHeader && childType == TypeSection {
		return fmt.Errorf("%w: a header cannot contain a section", ErrNestingNotAllowed)
	}
	return nil
}

// Validate reports whether dataJSON holds valid attributes for blockType
func Validate(blockType, dataJSON string) error {
	var err error
	switch blockType {
	case TypeText:
		var data TextBlockData
		err = decode(dataJSON, &data)
	case TypeHeader:
		_, err = ParseHeader(dataJSON)
	case TypeSection:
		_, err = ParseSection(dataJSON)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownType, blockType)
	}
	return err
}

// RenderBlock renders a block without inner blocks to its saved HTML
func RenderBlock(blockType string, dataJSON string) (string, error) {
	return Render(&Node{Type: blockType, Data: dataJSON}, ModeSave)
}

// Render renders a block and its inner blocks
func Render(n *Node, mode Mode) (string, error) {
	switch n.Type {
	case TypeText:
		return renderTextBlock(n.Data)
	case TypeHeader:
		attrs, err := ParseHeader(n.Data)
		if err != nil {
			return "", err
		}
		inner := renderChildren(n, mode)
		if mode == ModePreview {
			return previewHeader(attrs, inner), nil
		}
		return saveHeader(attrs, inner), nil
	case TypeSection:
		attrs, err := ParseSection(n.Data)
		if err != nil {
			return "", err
		}
		inner := renderChildren(n, mode)
		if mode == ModePreview {
			return previewSection(attrs, inner), nil
		}
		return saveSection(attrs, inner), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownType, n.Type)
	}
}

// RenderAll renders sibling blocks in order, skipping any that fail
func RenderAll(nodes []*Node, mode Mode) string {
	var out strings.Builder
	for _, child := range nodes {
		html, err := Render(child, mode)
		if err != nil {
			// Log error but continue rendering other blocks
			log.Printf("Error rendering block %d: %v", child.ID, err)
			continue
		}
		out.WriteString(html)
		out.WriteString("\n")
	}
	return out.String()
}

func renderChildren(n *Node, mode Mode) string {
	var allowed []*Node
	for _, child := range n.Children {
		if err := CheckNesting(n.Type, child.Type); err != nil {
			log.Printf("Skipping block %d inside block %d: %v", child.ID, n.ID, err)
			continue
		}
		allowed = append(allowed, child)
	}
	return RenderAll(allowed, mode)
}
