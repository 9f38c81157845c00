// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package doc implements the document model for conversation notes.
package doc

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// =============================================================================
// MARKDOWN IMPORT
// =============================================================================

// FromMarkdown parses markdown source into a document. This is the import
// path for legacy note content and for the text fragments carried by aiBlock
// suggestions. Formatting the schema has no node for (emphasis, links, code)
// is flattened to plain text.
func FromMarkdown(src []byte) (*Node, error) {
	md := goldmark.New()
	parsed := md.Parser().Parse(text.NewReader(src))

	root := NewDocument()
	for c := parsed.FirstChild(); c != nil; c = c.NextSibling() {
		if b := blockFromMarkdown(c, src); b != nil {
			root.Content = append(root.Content, b)
		}
	}
	if len(root.Content) == 0 {
		root.Content = append(root.Content, NewParagraph())
	}
	if err := Validate(root); err != nil {
		return nil, &DeserializationError{Reason: "markdown import", Err: err}
	}
	return root, nil
}

func blockFromMarkdown(n ast.Node, src []byte) *Node {
	switch b := n.(type) {
	case *ast.Heading:
		return NewHeading(b.Level, inlineFromMarkdown(b, src)...)
	case *ast.Paragraph, *ast.TextBlock:
		return NewParagraph(inlineFromMarkdown(n, src)...)
	case *ast.List:
		// Ordered lists collapse into bullet lists; the schema has one list.
		list := NewBulletList()
		for item := b.FirstChild(); item != nil; item = item.NextSibling() {
			li := NewListItem()
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if blk := blockFromMarkdown(c, src); blk != nil {
					li.Content = append(li.Content, blk)
				}
			}
			if len(li.Content) == 0 {
				li.Content = append(li.Content, NewParagraph())
			}
			list.Content = append(list.Content, li)
		}
		if len(list.Content) == 0 {
			return nil
		}
		return list
	case *ast.Blockquote:
		bq := NewBlockquote()
		for c := b.FirstChild(); c != nil; c = c.NextSibling() {
			if blk := blockFromMarkdown(c, src); blk != nil {
				bq.Content = append(bq.Content, blk)
			}
		}
		if len(bq.Content) == 0 {
			return nil
		}
		return bq
	default:
		// Thematic breaks, HTML blocks, code blocks: degrade to a paragraph
		// of their literal text, or drop when empty.
		flat := flattenText(n, src)
		if strings.TrimSpace(flat) == "" {
			return nil
		}
		return NewParagraph(NewText(flat))
	}
}

// inlineFromMarkdown converts the inline children of a block, merging
// adjacent text and emitting image nodes.
func inlineFromMarkdown(block ast.Node, src []byte) []*Node {
	var out []*Node
	var pending strings.Builder

	flush := func() {
		if pending.Len() > 0 {
			out = append(out, NewText(pending.String()))
			pending.Reset()
		}
	}

	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch i := c.(type) {
			case *ast.Image:
				flush()
				out = append(out, NewImage(string(i.Destination), flattenText(i, src)))
			case *ast.Text:
				pending.Write(i.Segment.Value(src))
				if i.SoftLineBreak() || i.HardLineBreak() {
					pending.WriteString(" ")
				}
			case *ast.String:
				pending.Write(i.Value)
			default:
				visit(c)
			}
		}
	}
	visit(block)
	flush()
	return out
}

// flattenText extracts all literal text beneath a markdown node.
func flattenText(n ast.Node, src []byte) string {
	var sb strings.Builder
	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
		case *ast.String:
			sb.Write(t.Value)
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

// =============================================================================
// MARKDOWN EXPORT
// =============================================================================

// ToMarkdown renders the document as markdown for the read-only preview and
// for export. Chips render as checkbox-style markers; pending aiBlocks render
// as quoted sections so unapproved content is visibly provisional.
func ToMarkdown(root *Node) string {
	var sb strings.Builder
	for i, b := range root.Content {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeBlockMarkdown(&sb, b, "")
	}
	return sb.String()
}

func writeBlockMarkdown(sb *strings.Builder, n *Node, prefix string) {
	switch n.Type {
	case TypeHeading:
		level := 1
		if a, ok := n.Attrs.(*HeadingAttrs); ok {
			level = a.Level
		}
		sb.WriteString(prefix + strings.Repeat("#", level) + " " + inlineMarkdown(n) + "\n")
	case TypeParagraph:
		sb.WriteString(prefix + inlineMarkdown(n) + "\n")
	case TypeBulletList:
		for _, item := range n.Content {
			for j, blk := range item.Content {
				p := prefix + "- "
				if j > 0 {
					p = prefix + "  "
				}
				writeBlockMarkdown(sb, blk, p)
			}
		}
	case TypeBlockquote:
		for _, blk := range n.Content {
			writeBlockMarkdown(sb, blk, prefix+"> ")
		}
	case TypeAIBlock:
		a, _ := n.Attrs.(*AIBlockAttrs)
		sb.WriteString(prefix + "> **Suggested")
		if a != nil && a.Title != "" {
			sb.WriteString(": " + a.Title)
		}
		sb.WriteString("**\n")
		if a != nil && a.Content != "" {
			for _, line := range strings.Split(strings.TrimRight(a.Content, "\n"), "\n") {
				sb.WriteString(prefix + "> " + line + "\n")
			}
		}
	}
}

func inlineMarkdown(block *Node) string {
	var sb strings.Builder
	for _, c := range block.Content {
		switch c.Type {
		case TypeText:
			sb.WriteString(c.Text)
		case TypeTaskChip:
			if a, ok := c.Attrs.(*ChipAttrs); ok {
				sb.WriteString("`[" + string(a.ChipType) + ": " + a.Title + "]`")
			}
		case TypeImage:
			if a, ok := c.Attrs.(*ImageAttrs); ok {
				sb.WriteString("![" + a.Alt + "](" + a.Src + ")")
			}
		}
	}
	return sb.String()
}
