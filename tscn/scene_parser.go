// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package tscn

import (
	"gopkg.tscn.org/parser.go/exc"
	"gopkg.tscn.org/parser.go/optional"
)

// ParseDocument assembles a Document from the full token sequence.
//
// Document = header ext_resource* sub_resource* node* connection* editable*
//
// The parser moves through the five section phases strictly forward,
// consuming consecutive sections whose keyword matches the current phase. A
// section appearing out of this canonical order is silently excluded from
// its phase rather than reordered; this mirrors the format's established
// behavior and is deliberate.
//
// Header-level failures are fatal. A property value that fails to parse is
// recorded as a warning on the document and parsing resumes at the next
// property or section.
func ParseDocument(tokens []Token) (*Document, error) {
	p := &sceneParser{tokens: tokens, reporter: exc.NewReporter()}
	doc, err := p.parseDocument()
	if err != nil {
		if _, ok := err.(exc.Exception); !ok {
			err = exc.WrapUnknown(err)
		}
		return nil, err
	}
	return doc, nil
}

// sceneParser holds the call-scoped cursor state for one document parse.
// Nothing here survives the call; the finished document carries no reference
// back into it.
type sceneParser struct {
	tokens   []Token
	pos      int
	reporter exc.Reporter
}

func (p *sceneParser) parseDocument() (*Document, error) {
	doc := &Document{}

	headerSection := &sectionHeader{keyword: "gd_scene", attrs: map[string]Value{}}
	for p.peekSectionKeyword() == "gd_scene" {
		sh, err := p.parseSectionHeader()
		if err != nil {
			return nil, err
		}
		headerSection = sh
	}
	header, err := p.extractHeader(headerSection)
	if err != nil {
		return nil, err
	}
	doc.Header = header

	for p.peekSectionKeyword() == "ext_resource" {
		sh, err := p.parseSectionHeader()
		if err != nil {
			return nil, err
		}
		res, err := p.extractExtResource(sh)
		if err != nil {
			return nil, err
		}
		doc.ExtResources = append(doc.ExtResources, res)
	}

	for p.peekSectionKeyword() == "sub_resource" {
		sh, err := p.parseSectionHeader()
		if err != nil {
			return nil, err
		}
		res, err := p.extractSubResource(sh)
		if err != nil {
			return nil, err
		}
		res.Properties = p.parseProperties()
		doc.SubResources = append(doc.SubResources, res)
	}

	for p.peekSectionKeyword() == "node" {
		sh, err := p.parseSectionHeader()
		if err != nil {
			return nil, err
		}
		node, err := p.extractNode(sh)
		if err != nil {
			return nil, err
		}
		node.Properties = p.parseProperties()
		doc.Nodes = append(doc.Nodes, node)
	}

	for p.peekSectionKeyword() == "connection" {
		sh, err := p.parseSectionHeader()
		if err != nil {
			return nil, err
		}
		conn, err := p.extractConnection(sh)
		if err != nil {
			return nil, err
		}
		doc.Connections = append(doc.Connections, conn)
	}

	for p.peekSectionKeyword() == "editable" {
		sh, err := p.parseSectionHeader()
		if err != nil {
			return nil, err
		}
		path, err := sh.requireString("path")
		if err != nil {
			return nil, err
		}
		doc.EditablePaths = append(doc.EditablePaths, path)
	}

	// Anything still unconsumed is a section that fell outside its phase;
	// it stays excluded.

	for _, w := range p.reporter.Reported() {
		doc.Warnings = append(doc.Warnings, w.Message())
	}
	return doc, nil
}

// at returns the token n positions past the cursor; past the end of the
// sequence it keeps returning EOF.
func (p *sceneParser) at(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Type: TokenTypeEOF}
	}
	return p.tokens[p.pos+n]
}

// peekSectionKeyword returns the keyword of the next bracketed section
// without consuming it, or "" when the cursor is not at a section opening.
func (p *sceneParser) peekSectionKeyword() string {
	if p.at(0).Type == TokenTypeSquareOpen && p.at(1).Type == TokenTypeIdentifier {
		return p.at(1).Text
	}
	return ""
}

type sectionHeader struct {
	keyword string
	kwTok   Token
	attrs   map[string]Value
}

// SectionHeader = "[" keyword { name "=" Value } "]"
//
// Duplicate attribute names are a mapping assignment, not an error: the last
// write wins. Malformed punctuation anywhere in the header is fatal.
func (p *sceneParser) parseSectionHeader() (*sectionHeader, error) {
	open := p.at(0)
	if open.Type != TokenTypeSquareOpen {
		return nil, p.malformed(open, "expecting '[' to open a section")
	}
	p.pos++
	kw := p.at(0)
	if kw.Type != TokenTypeIdentifier {
		return nil, p.malformed(kw, "expecting a section keyword after '['")
	}
	p.pos++
	sh := &sectionHeader{keyword: kw.Text, kwTok: kw, attrs: map[string]Value{}}
	for {
		tok := p.at(0)
		if tok.Type == TokenTypeSquareClose {
			p.pos++
			return sh, nil
		}
		if tok.Type != TokenTypeIdentifier {
			return nil, p.malformed(tok, "expecting an attribute name or ']' in "+sh.keyword+" section header")
		}
		name := tok
		p.pos++
		if eq := p.at(0); eq.Type != TokenTypeEqual {
			return nil, p.malformed(eq, "expecting '=' after attribute '"+name.Text+"'")
		}
		p.pos++
		v, next, err := ParseValue(p.tokens, p.pos)
		if err != nil {
			return nil, err
		}
		p.pos = next
		sh.attrs[name.Text] = v
	}
}

func (p *sceneParser) malformed(tok Token, message string) error {
	loc := exc.Location{}
	if tok.Type != TokenTypeEOF || tok.Line > 0 {
		loc = exc.At(tok.Line, tok.Column)
	}
	return exc.New(exc.KindStructure, loc, exc.CodeMalformedSection, message)
}

// parseProperties reads "name = value" lines until the next section opens.
// A value that fails to parse becomes a warning rather than an error: the
// cursor skips forward to the next section bracket or identifier and the
// loop continues.
func (p *sceneParser) parseProperties() *Dictionary {
	props := NewDictionary()
	for p.at(0).Type == TokenTypeIdentifier {
		name := p.at(0)
		p.pos++
		if eq := p.at(0); eq.Type != TokenTypeEqual {
			// A missing '=' is not recoverable the way a bad value is;
			// resynchronize and record it instead of guessing at intent.
			p.reporter.Report(exc.Newf(exc.KindValue, tokenAt(&name), exc.CodeRecovered,
				"Failed to parse property '%s': expecting '=' after property name", name.Text))
			p.resync()
			continue
		}
		p.pos++
		v, next, err := ParseValue(p.tokens, p.pos)
		if err != nil {
			p.reporter.Report(exc.Newf(exc.KindValue, tokenAt(&name), exc.CodeRecovered,
				"Failed to parse property '%s': %s", name.Text, err.Error()))
			p.pos = next
			p.resync()
			continue
		}
		p.pos = next
		props.Set(name.Text, v)
	}
	return props
}

// resync skips forward until the cursor sits on a section bracket, an
// identifier, or the end of input. Token-bounded, so it always terminates.
func (p *sceneParser) resync() {
	for {
		switch p.at(0).Type {
		case TokenTypeEOF, TokenTypeSquareOpen, TokenTypeIdentifier:
			return
		}
		p.pos++
	}
}

func (p *sceneParser) extractHeader(sh *sectionHeader) (Header, error) {
	format, err := sh.requireInt("format")
	if err != nil {
		return Header{}, err
	}
	loadSteps, err := sh.optionalInt("load_steps")
	if err != nil {
		return Header{}, err
	}
	uid, err := sh.optionalString("uid")
	if err != nil {
		return Header{}, err
	}
	return Header{
		Format:    format,
		LoadSteps: loadSteps.OrElse(0),
		UID:       uid,
	}, nil
}

func (p *sceneParser) extractExtResource(sh *sectionHeader) (ExternalResource, error) {
	res := ExternalResource{}
	var err error
	if res.Type, err = sh.requireString("type"); err != nil {
		return res, err
	}
	if res.Path, err = sh.requireString("path"); err != nil {
		return res, err
	}
	if res.ID, err = sh.requireString("id"); err != nil {
		return res, err
	}
	if res.UID, err = sh.optionalString("uid"); err != nil {
		return res, err
	}
	return res, nil
}

func (p *sceneParser) extractSubResource(sh *sectionHeader) (SubResourceRecord, error) {
	res := SubResourceRecord{}
	var err error
	if res.Type, err = sh.requireString("type"); err != nil {
		return res, err
	}
	if res.ID, err = sh.requireString("id"); err != nil {
		return res, err
	}
	return res, nil
}

func (p *sceneParser) extractNode(sh *sectionHeader) (Node, error) {
	node := Node{}
	var err error
	if node.Name, err = sh.requireString("name"); err != nil {
		return node, err
	}
	if node.Type, err = sh.optionalString("type"); err != nil {
		return node, err
	}
	if node.Parent, err = sh.optionalString("parent"); err != nil {
		return node, err
	}
	if node.InstancePlaceholder, err = sh.optionalString("instance_placeholder"); err != nil {
		return node, err
	}
	if node.UniqueID, err = sh.optionalInt("unique_id"); err != nil {
		return node, err
	}
	if node.Instance, err = sh.instanceAttr(); err != nil {
		return node, err
	}
	node.Groups = p.groupsAttr(sh, node.Name)
	return node, nil
}

func (p *sceneParser) extractConnection(sh *sectionHeader) (Connection, error) {
	conn := Connection{}
	var err error
	if conn.Signal, err = sh.requireString("signal"); err != nil {
		return conn, err
	}
	if conn.From, err = sh.requireString("from"); err != nil {
		return conn, err
	}
	if conn.To, err = sh.requireString("to"); err != nil {
		return conn, err
	}
	if conn.Method, err = sh.requireString("method"); err != nil {
		return conn, err
	}
	flags, err := sh.optionalInt("flags")
	if err != nil {
		return conn, err
	}
	conn.Flags = flags.OrElse(ConnectFlagPersist)
	if conn.Unbinds, err = sh.optionalInt("unbinds"); err != nil {
		return conn, err
	}
	// A binds value that is not an array is treated as absent.
	if v, ok := sh.attrs["binds"]; ok {
		if arr, ok := v.(Array); ok {
			conn.Binds = arr
		}
	}
	return conn, nil
}

// instanceAttr accepts a resource reference or a plain string and stores
// the canonical textual form either way.
func (sh *sectionHeader) instanceAttr() (optional.Optional[string], error) {
	v, ok := sh.attrs["instance"]
	if !ok {
		return optional.None[string](), nil
	}
	switch t := v.(type) {
	case ExtResource:
		return optional.Some(t.String()), nil
	case SubResource:
		return optional.Some(t.String()), nil
	case String:
		return optional.Some(string(t)), nil
	}
	return optional.None[string](), sh.badAttr("instance", "a resource reference or string")
}

// groupsAttr extracts the groups array. A non-array value or a non-string
// entry degrades to a warning, never a failure.
func (p *sceneParser) groupsAttr(sh *sectionHeader, nodeName string) []string {
	v, ok := sh.attrs["groups"]
	if !ok {
		return nil
	}
	arr, ok := v.(Array)
	if !ok {
		p.reporter.Report(exc.Newf(exc.KindStructure, tokenAt(&sh.kwTok), exc.CodeRecovered,
			"Attribute 'groups' on node '%s' is not an array; ignoring it", nodeName))
		return nil
	}
	groups := make([]string, 0, len(arr))
	for _, el := range arr {
		s, ok := el.(String)
		if !ok {
			p.reporter.Report(exc.Newf(exc.KindStructure, tokenAt(&sh.kwTok), exc.CodeRecovered,
				"Skipping non-string group entry on node '%s'", nodeName))
			continue
		}
		groups = append(groups, string(s))
	}
	return groups
}

func (sh *sectionHeader) requireString(name string) (string, error) {
	v, ok := sh.attrs[name]
	if !ok {
		return "", sh.missingAttr(name)
	}
	s, ok := v.(String)
	if !ok {
		return "", sh.badAttr(name, "a string")
	}
	return string(s), nil
}

func (sh *sectionHeader) optionalString(name string) (optional.Optional[string], error) {
	v, ok := sh.attrs[name]
	if !ok {
		return optional.None[string](), nil
	}
	s, ok := v.(String)
	if !ok {
		return optional.None[string](), sh.badAttr(name, "a string")
	}
	return optional.Some(string(s)), nil
}

func (sh *sectionHeader) requireInt(name string) (int64, error) {
	v, ok := sh.attrs[name]
	if !ok {
		return 0, sh.missingAttr(name)
	}
	n, ok := v.(Number)
	if !ok {
		return 0, sh.badAttr(name, "an integer")
	}
	return int64(n), nil
}

func (sh *sectionHeader) optionalInt(name string) (optional.Optional[int64], error) {
	v, ok := sh.attrs[name]
	if !ok {
		return optional.None[int64](), nil
	}
	n, ok := v.(Number)
	if !ok {
		return optional.None[int64](), sh.badAttr(name, "an integer")
	}
	return optional.Some(int64(n)), nil
}

func (sh *sectionHeader) missingAttr(name string) error {
	loc := exc.Location{}
	if sh.kwTok.Line > 0 {
		loc = tokenAt(&sh.kwTok)
	}
	return exc.Newf(exc.KindStructure, loc, exc.CodeMissingAttribute,
		"missing required attribute '%s' in %s section", name, sh.keyword)
}

func (sh *sectionHeader) badAttr(name string, want string) error {
	loc := exc.Location{}
	if sh.kwTok.Line > 0 {
		loc = tokenAt(&sh.kwTok)
	}
	return exc.Newf(exc.KindStructure, loc, exc.CodeBadAttribute,
		"attribute '%s' in %s section must be %s", name, sh.keyword, want)
}
