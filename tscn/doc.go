// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

// Package tscn reads the text-based scene format of the Godot engine into a
// typed in-memory document, with no dependency on the engine itself. It is
// meant for tools that inspect or transform scene files offline: asset
// pipelines, validators, converters.
//
// The pipeline has three stages:
//
//   - Lex: raw text to a token sequence with line/column positions.
//   - ParseValue: recursive descent over tokens for the typed-literal
//     grammar (vectors, transforms, colors, resource references, arrays,
//     dictionaries, typed collections).
//   - ParseDocument: assembles the bracketed sections (header, resources,
//     node hierarchy, signal connections, editable markers) into a
//     Document, recovering from property-level failures by recording
//     warnings instead of aborting.
//
// Parse, ParseFile and ParseValueText compose the stages for the common
// cases. A parse call is a one-shot batch operation over fully materialized
// input; the package keeps no state between calls, and independent calls
// are safe to run concurrently.
package tscn
