package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder builds our internal AST from a tree-sitter CST. It only
// gives dedicated shape to the nodes module-facts extraction and Vue
// script handling read: the program, import/export statements and
// their specifiers, and declaration names. Everything else (control
// flow, expressions, statement bodies) is never inspected, so it
// collapses into a generic Node carrying its own children -
// sufficient for declaredNames' best-effort walk over destructuring
// patterns and non-variable declaration names, and otherwise inert.
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a new AST builder.
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{
		filename: filename,
		source:   source,
	}
}

// Build builds the AST from a tree-sitter node.
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}
	return b.buildNode(tsNode)
}

// buildNode converts a tree-sitter node to our internal AST node.
func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	switch tsNode.Type() {
	case "program":
		return b.buildProgram(tsNode)
	case "function_declaration", "function", "generator_function_declaration":
		return b.buildNamedDeclaration(tsNode, NodeFunction)
	case "class_declaration":
		return b.buildNamedDeclaration(tsNode, NodeClass)
	case "variable_declaration", "lexical_declaration":
		return b.buildVariableDeclaration(tsNode)
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "type_identifier":
		return b.buildIdentifier(tsNode)
	case "string":
		return b.buildStringLiteral(tsNode)
	case "import_statement":
		return b.buildImportStatement(tsNode)
	case "export_statement":
		return b.buildExportStatement(tsNode)
	default:
		return b.buildGenericNode(tsNode)
	}
}

// buildProgram builds the program node's top-level statement list.
func (b *ASTBuilder) buildProgram(tsNode *sitter.Node) *Node {
	node := NewNode(NodeProgram)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) {
			if childNode := b.buildNode(child); childNode != nil {
				node.Body = append(node.Body, childNode)
			}
		}
	}

	return node
}

// buildNamedDeclaration builds a function/class declaration, keeping
// only its name - declaredNames never needs the body or parameters.
func (b *ASTBuilder) buildNamedDeclaration(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.getLocation(tsNode)
	if nameNode := b.getChildByFieldName(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	return node
}

// buildVariableDeclaration builds a `var`/`let`/`const` declaration,
// one Declarations entry per declarator. Each declarator keeps only
// its binding pattern (Children[0]) so declaredNames can resolve a
// plain identifier or walk a destructuring pattern for nested names;
// the initializer expression is not built.
func (b *ASTBuilder) buildVariableDeclaration(tsNode *sitter.Node) *Node {
	node := NewNode(NodeVariableDeclaration)
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || child.Type() != "variable_declarator" {
			continue
		}
		declNode := NewNode(NodeType(child.Type()))
		declNode.Location = b.getLocation(child)
		if nameNode := b.getChildByFieldName(child, "name"); nameNode != nil {
			declNode.AddChild(b.buildNode(nameNode))
		}
		node.Declarations = append(node.Declarations, declNode)
	}

	return node
}

// buildIdentifier builds an identifier node.
func (b *ASTBuilder) buildIdentifier(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIdentifier)
	node.Location = b.getLocation(tsNode)
	node.Name = tsNode.Content(b.source)
	return node
}

// buildStringLiteral builds a string literal node, used for import
// and re-export sources.
func (b *ASTBuilder) buildStringLiteral(tsNode *sitter.Node) *Node {
	node := NewNode(NodeStringLiteral)
	node.Location = b.getLocation(tsNode)
	node.Raw = tsNode.Content(b.source)
	return node
}

// buildImportStatement builds an import statement node.
func (b *ASTBuilder) buildImportStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeImportDeclaration)
	node.Location = b.getLocation(tsNode)

	if sourceNode := b.getChildByFieldName(tsNode, "source"); sourceNode != nil {
		node.Source = b.buildNode(sourceNode)
	}

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "type":
			// `import type { Foo } from "m"` - whole declaration is type-only
			node.IsType = true

		case "import_clause":
			b.extractImportClause(child, node)

		case "namespace_import":
			// import * as name from 'module'
			specNode := NewNode(NodeImportNamespaceSpecifier)
			specNode.Location = b.getLocation(child)
			for j := 0; j < int(child.ChildCount()); j++ {
				if grandchild := child.Child(j); grandchild != nil && grandchild.Type() == "identifier" {
					specNode.Name = grandchild.Content(b.source)
				}
			}
			node.Specifiers = append(node.Specifiers, specNode)

		case "named_imports":
			// import { a, b } from 'module'
			for j := 0; j < int(child.ChildCount()); j++ {
				if importSpec := child.Child(j); importSpec != nil && importSpec.Type() == "import_specifier" {
					if specNode := b.buildImportSpecifier(importSpec); specNode != nil {
						node.Specifiers = append(node.Specifiers, specNode)
					}
				}
			}

		case "import_specifier":
			if specNode := b.buildImportSpecifier(child); specNode != nil {
				node.Specifiers = append(node.Specifiers, specNode)
			}
		}
	}

	return node
}

// extractImportClause extracts specifiers from an import_clause node.
func (b *ASTBuilder) extractImportClause(clauseNode *sitter.Node, node *Node) {
	for i := 0; i < int(clauseNode.ChildCount()); i++ {
		child := clauseNode.Child(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "identifier":
			// Default import: import React from 'react'
			specNode := NewNode(NodeImportDefaultSpecifier)
			specNode.Location = b.getLocation(child)
			specNode.Name = child.Content(b.source)
			node.Specifiers = append(node.Specifiers, specNode)

		case "namespace_import":
			// Namespace import: import * as React from 'react'
			specNode := NewNode(NodeImportNamespaceSpecifier)
			specNode.Location = b.getLocation(child)
			for j := 0; j < int(child.ChildCount()); j++ {
				if grandchild := child.Child(j); grandchild != nil && grandchild.Type() == "identifier" {
					specNode.Name = grandchild.Content(b.source)
				}
			}
			node.Specifiers = append(node.Specifiers, specNode)

		case "named_imports":
			// Named imports: import { useState, useEffect } from 'react'
			for j := 0; j < int(child.ChildCount()); j++ {
				if importSpec := child.Child(j); importSpec != nil && importSpec.Type() == "import_specifier" {
					if specNode := b.buildImportSpecifier(importSpec); specNode != nil {
						node.Specifiers = append(node.Specifiers, specNode)
					}
				}
			}
		}
	}
}

// buildImportSpecifier builds an import specifier node.
func (b *ASTBuilder) buildImportSpecifier(tsNode *sitter.Node) *Node {
	specNode := NewNode(NodeImportSpecifier)
	specNode.Location = b.getLocation(tsNode)

	// An import specifier can have: name or name as alias, optionally
	// prefixed with an inline `type` marker.
	var identifiers []*sitter.Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "type" {
			specNode.IsType = true
			continue
		}
		if child.Type() == "identifier" {
			identifiers = append(identifiers, child)
		}
	}

	if len(identifiers) == 1 {
		// import { foo } - same name for imported and local
		specNode.Name = identifiers[0].Content(b.source)
		specNode.Imported = NewNode(NodeIdentifier)
		specNode.Imported.Name = specNode.Name
	} else if len(identifiers) == 2 {
		// import { foo as bar } - first is imported, second is local
		specNode.Imported = NewNode(NodeIdentifier)
		specNode.Imported.Name = identifiers[0].Content(b.source)
		specNode.Name = identifiers[1].Content(b.source)
	}

	return specNode
}

// buildExportStatement builds an export statement node.
func (b *ASTBuilder) buildExportStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeExportNamedDeclaration)
	node.Location = b.getLocation(tsNode)

	hasDefault := false
	hasWildcard := false
	afterAs := false

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "default":
			hasDefault = true
		case "type":
			// `export type { Foo }` or `export type * from "m"` -
			// whole declaration is type-only.
			node.IsType = true
		case "*":
			hasWildcard = true
		case "as":
			afterAs = true
		case "identifier":
			// Only meaningful after `*` and `as`: `export * as ns from "m"`.
			if hasWildcard && afterAs {
				node.NSName = child.Content(b.source)
			}
		case "namespace_export":
			// `export * as ns from "m"` when the grammar groups `*`,
			// `as` and the bound name into one namespace_export node.
			hasWildcard = true
			for j := 0; j < int(child.ChildCount()); j++ {
				if gc := child.Child(j); gc != nil && gc.Type() == "identifier" {
					node.NSName = gc.Content(b.source)
				}
			}
		case "export_clause":
			// export { foo, bar } or export { foo as bar }
			b.extractExportClause(child, node)
		}
	}

	if hasDefault {
		node.Type = NodeExportDefaultDeclaration
	} else if hasWildcard {
		node.Type = NodeExportAllDeclaration
	}

	// Extract declaration (for named and default exports)
	if declNode := b.getChildByFieldName(tsNode, "declaration"); declNode != nil {
		node.Declaration = b.buildNode(declNode)
	}

	// Extract value (for default exports like: export default function() {})
	if valueNode := b.getChildByFieldName(tsNode, "value"); valueNode != nil {
		node.Declaration = b.buildNode(valueNode)
	}

	// Extract source if re-exporting
	if sourceNode := b.getChildByFieldName(tsNode, "source"); sourceNode != nil {
		node.Source = b.buildNode(sourceNode)
	}

	return node
}

// extractExportClause extracts specifiers from an export_clause node.
func (b *ASTBuilder) extractExportClause(clauseNode *sitter.Node, node *Node) {
	for i := 0; i < int(clauseNode.ChildCount()); i++ {
		child := clauseNode.Child(i)
		if child == nil || child.Type() != "export_specifier" {
			continue
		}

		specNode := NewNode(NodeExportSpecifier)
		specNode.Location = b.getLocation(child)

		// Extract the identifiers (local and exported names), noting
		// an inline `type` marker: export { type Foo }.
		var identifiers []*sitter.Node
		for j := 0; j < int(child.ChildCount()); j++ {
			grandchild := child.Child(j)
			if grandchild == nil {
				continue
			}
			if grandchild.Type() == "type" {
				specNode.IsType = true
				continue
			}
			if grandchild.Type() == "identifier" {
				identifiers = append(identifiers, grandchild)
			}
		}

		if len(identifiers) == 1 {
			// export { foo } - same name
			specNode.Name = identifiers[0].Content(b.source)
			specNode.Local = NewNode(NodeIdentifier)
			specNode.Local.Name = specNode.Name
		} else if len(identifiers) == 2 {
			// export { foo as bar } - first is local, second is exported
			specNode.Local = NewNode(NodeIdentifier)
			specNode.Local.Name = identifiers[0].Content(b.source)
			specNode.Name = identifiers[1].Content(b.source)
		}

		node.Specifiers = append(node.Specifiers, specNode)
	}
}

// buildGenericNode builds a generic node for any type module-facts
// extraction never inspects (control flow, expressions, destructuring
// patterns, TypeScript interface/type/enum declarations, ...),
// recursing into its children so declaredNames' best-effort walk can
// still find nested identifiers (e.g. inside `const { a, b } = ...`).
func (b *ASTBuilder) buildGenericNode(tsNode *sitter.Node) *Node {
	node := NewNode(NodeType(tsNode.Type()))
	node.Location = b.getLocation(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) {
			node.AddChild(b.buildNode(child))
		}
	}

	return node
}

// getLocation extracts location information from a tree-sitter node.
func (b *ASTBuilder) getLocation(tsNode *sitter.Node) Location {
	return Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
	}
}

// getChildByFieldName gets a child node by field name.
func (b *ASTBuilder) getChildByFieldName(tsNode *sitter.Node, fieldName string) *sitter.Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		if child := tsNode.Child(i); child != nil && tsNode.FieldNameForChild(i) == fieldName {
			return child
		}
	}
	return nil
}

// isTrivia checks if a node is trivia (whitespace, comments, etc.).
func (b *ASTBuilder) isTrivia(tsNode *sitter.Node) bool {
	switch tsNode.Type() {
	case "comment", "line_comment", "block_comment", "":
		return true
	}
	return false
}
