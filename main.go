// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"gopkg.tscn.org/parser.go/tscn"
)

type opts struct {
	Output     string
	DumpTokens bool
	Strict     bool
}

func main() {
	op := &opts{}
	flags := pflag.NewFlagSet("tscnq", pflag.PanicOnError)
	flags.StringVar(&op.Output, "output", "-", "Output file or - for STDOUT.")
	flags.BoolVar(&op.DumpTokens, "dump-tokens", false, "Output the token stream instead of the parsed document.")
	flags.BoolVar(&op.Strict, "strict", false, "Exit non-zero when a document parses with warnings.")
	_ = flags.Parse(os.Args[1:])
	targets := flags.Args()

	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tscnq [flags] FILE...")
		os.Exit(2)
	}

	out := io.Writer(os.Stdout)
	if op.Output != "-" {
		f, err := os.Create(op.Output)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	failed := false
	for _, target := range targets {
		if err := run(out, target, op); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", target, err.Error())
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func run(out io.Writer, target string, op *opts) error {
	body, err := os.ReadFile(target)
	if err != nil {
		return err
	}

	if op.DumpTokens {
		tokens, err := tscn.Lex(string(body))
		if err != nil {
			return err
		}
		for _, tok := range tokens {
			fmt.Fprintf(out, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Type, tok.Text)
		}
		return nil
	}

	doc, err := tscn.Parse(string(body))
	if err != nil {
		return err
	}
	for _, w := range doc.Warnings {
		fmt.Fprintf(os.Stderr, "%s: warning: %s\n", target, w)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(renderDocument(target, doc)); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if op.Strict && len(doc.Warnings) > 0 {
		return fmt.Errorf("%d warning(s)", len(doc.Warnings))
	}
	return nil
}

func renderDocument(target string, doc *tscn.Document) map[string]any {
	header := map[string]any{
		"format":     doc.Header.Format,
		"load_steps": doc.Header.LoadSteps,
	}
	if doc.Header.UID.IsPresent() {
		header["uid"] = doc.Header.UID.Value()
	}

	ext := make([]map[string]any, 0, len(doc.ExtResources))
	for _, r := range doc.ExtResources {
		m := map[string]any{"type": r.Type, "path": r.Path, "id": r.ID}
		if r.UID.IsPresent() {
			m["uid"] = r.UID.Value()
		}
		ext = append(ext, m)
	}

	sub := make([]map[string]any, 0, len(doc.SubResources))
	for _, r := range doc.SubResources {
		sub = append(sub, map[string]any{
			"type":       r.Type,
			"id":         r.ID,
			"properties": renderProperties(r.Properties),
		})
	}

	nodes := make([]map[string]any, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		m := map[string]any{"name": n.Name}
		if n.Type.IsPresent() {
			m["type"] = n.Type.Value()
		}
		if n.Parent.IsPresent() {
			m["parent"] = n.Parent.Value()
		}
		if n.Instance.IsPresent() {
			m["instance"] = n.Instance.Value()
		}
		if n.InstancePlaceholder.IsPresent() {
			m["instance_placeholder"] = n.InstancePlaceholder.Value()
		}
		if n.UniqueID.IsPresent() {
			m["unique_id"] = n.UniqueID.Value()
		}
		if len(n.Groups) > 0 {
			m["groups"] = n.Groups
		}
		m["properties"] = renderProperties(n.Properties)
		nodes = append(nodes, m)
	}

	conns := make([]map[string]any, 0, len(doc.Connections))
	for _, c := range doc.Connections {
		m := map[string]any{
			"signal": c.Signal,
			"from":   c.From,
			"to":     c.To,
			"method": c.Method,
			"flags":  c.Flags,
		}
		if c.Binds != nil {
			m["binds"] = renderValue(c.Binds)
		}
		if c.Unbinds.IsPresent() {
			m["unbinds"] = c.Unbinds.Value()
		}
		conns = append(conns, m)
	}

	return map[string]any{
		"file":          target,
		"header":        header,
		"ext_resources": ext,
		"sub_resources": sub,
		"nodes":         nodes,
		"connections":   conns,
		"editable":      doc.EditablePaths,
		"warnings":      doc.Warnings,
	}
}

func renderProperties(props *tscn.Dictionary) map[string]any {
	out := map[string]any{}
	if props == nil {
		return out
	}
	for _, k := range props.Keys() {
		v, _ := props.Get(k)
		out[k] = renderValue(v)
	}
	return out
}

// renderValue flattens a parsed value into plain YAML-friendly data.
func renderValue(v tscn.Value) any {
	switch t := v.(type) {
	case tscn.Null:
		return nil
	case tscn.Bool:
		return bool(t)
	case tscn.Number:
		return float64(t)
	case tscn.String:
		return string(t)
	case tscn.Vector2:
		return []float64{t.X, t.Y}
	case tscn.Vector3:
		return []float64{t.X, t.Y, t.Z}
	case tscn.Vector4:
		return []float64{t.X, t.Y, t.Z, t.W}
	case tscn.Quaternion:
		return []float64{t.X, t.Y, t.Z, t.W}
	case tscn.Color:
		return []float64{t.R, t.G, t.B, t.A}
	case tscn.Basis:
		return t[:]
	case tscn.Transform3D:
		return map[string]any{"basis": t.Basis[:], "origin": renderValue(t.Origin)}
	case tscn.AABB:
		return map[string]any{"position": renderValue(t.Position), "size": renderValue(t.Size)}
	case tscn.Plane:
		return map[string]any{"normal": renderValue(t.Normal), "d": t.D}
	case tscn.ExtResource:
		return t.String()
	case tscn.SubResource:
		return t.String()
	case tscn.NodePath:
		return string(t)
	case tscn.PackedInt32Array:
		return []int32(t)
	case tscn.PackedVector3Array:
		out := make([]any, 0, len(t))
		for _, v3 := range t {
			out = append(out, renderValue(v3))
		}
		return out
	case tscn.Array:
		out := make([]any, 0, len(t))
		for _, el := range t {
			out = append(out, renderValue(el))
		}
		return out
	case *tscn.Dictionary:
		out := map[string]any{}
		for _, k := range t.Keys() {
			el, _ := t.Get(k)
			out[k] = renderValue(el)
		}
		return out
	}
	return nil
}
