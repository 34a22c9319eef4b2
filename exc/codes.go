// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package exc

const (
	CodeUnterminatedString = "T0001"
)

const (
	CodeUnexpectedToken = "V0001"
	CodeUnexpectedEOF   = "V0002"
	CodeWrongArgCount   = "V0003"
	CodeUnknownType     = "V0004"
	CodeBadArgument     = "V0005"
	CodeTrailingTokens  = "V0006"
)

const (
	CodeUnknownFatal     = "S0000"
	CodeMissingAttribute = "S0001"
	CodeMalformedSection = "S0002"
	CodeBadAttribute     = "S0003"
)

// CodeRecovered marks problems the scene parser recovered from; they end up
// in the document's warning list instead of failing the parse.
const CodeRecovered = "W0001"
