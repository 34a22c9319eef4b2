// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package tscn

import (
	"gopkg.tscn.org/parser.go/optional"
)

// Document is the complete result of parsing one scene file. It is built
// once per parse call and never mutated afterward; it holds no references
// back into parser state.
type Document struct {
	Header        Header
	ExtResources  []ExternalResource
	SubResources  []SubResourceRecord
	Nodes         []Node
	Connections   []Connection
	EditablePaths []string
	// Warnings records property-level failures the parser recovered from,
	// in the order they were encountered.
	Warnings []string
}

// Header holds the gd_scene section attributes.
type Header struct {
	LoadSteps int64
	Format    int64
	UID       optional.Optional[string]
}

// ExternalResource is a reference to an asset stored in a separate file.
type ExternalResource struct {
	Type string
	Path string
	ID   string
	UID  optional.Optional[string]
}

// SubResourceRecord is an asset defined inline within the scene file,
// together with its property block.
type SubResourceRecord struct {
	Type       string
	ID         string
	Properties *Dictionary
}

// Node is one element of the scene hierarchy. Parent is absent exactly when
// the node is the scene root. Instance holds the canonical textual form of
// the instanced resource reference.
type Node struct {
	Name                string
	Type                optional.Optional[string]
	Parent              optional.Optional[string]
	Instance            optional.Optional[string]
	InstancePlaceholder optional.Optional[string]
	UniqueID            optional.Optional[int64]
	Groups              []string
	Properties          *Dictionary
}

// Connection flags default.
const ConnectFlagPersist = 1

// Connection wires a signal on one node to a handler method on another.
type Connection struct {
	Signal string
	From   string
	To     string
	Method string
	// Binds is nil when the connection declares no bound arguments.
	Binds   Array
	Flags   int64
	Unbinds optional.Optional[int64]
}
