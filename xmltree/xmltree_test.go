// Copyright 2022 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package xmltree_test

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"mellium.im/openlink/xmltree"
	"mellium.im/xmlstream"
)

const testDoc = `<?xml version="1.0"?>
<command xmlns="http://jabber.org/protocol/commands" node="n" status="completed">
  <iodata xmlns="urn:xmpp:tmp:io-data" type="output">
    <out>
      <profile id="a"/>
      <profile id="b"> text </profile>
    </out>
  </iodata>
</command>`

func TestParse(t *testing.T) {
	el, err := xmltree.ParseString(testDoc)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	if el.Local() != "command" || el.Space() != "http://jabber.org/protocol/commands" {
		t.Errorf("wrong root: %v", el.XMLName)
	}
	if v, ok := el.AttrValue("status"); !ok || v != "completed" {
		t.Errorf("wrong status attribute: %q, %t", v, ok)
	}
	if _, ok := el.AttrValue("action"); ok {
		t.Errorf("did not expect action attribute")
	}
	out := el.Path("iodata", "out")
	if out == nil {
		t.Fatalf("expected out element")
	}
	if space := el.Child("iodata").Space(); space != "urn:xmpp:tmp:io-data" {
		t.Errorf("wrong iodata namespace: %q", space)
	}
	profiles := out.All("profile")
	if len(profiles) != 2 {
		t.Fatalf("wrong number of profiles: want=2, got=%d", len(profiles))
	}
	if txt := profiles[1].Text(); txt != "text" {
		t.Errorf("wrong text: want=%q, got=%q", "text", txt)
	}
	if n := len(out.Elements()); n != 2 {
		t.Errorf("wrong number of elements: want=2, got=%d", n)
	}
}

func TestNil(t *testing.T) {
	var el *xmltree.Element
	if el.Child("a").Path("b", "c") != nil {
		t.Errorf("expected nil child")
	}
	if el.Local() != "" || el.Space() != "" || el.Text() != "" || el.ChildText("a") != "" {
		t.Errorf("expected empty strings from nil element")
	}
	if el.All("a") != nil || el.Elements() != nil {
		t.Errorf("expected nil slices from nil element")
	}
	if _, ok := el.AttrValue("a"); ok {
		t.Errorf("expected no attribute on nil element")
	}
	if tok, err := el.TokenReader().Token(); tok != nil || err == nil {
		t.Errorf("expected empty token stream, got %v, %v", tok, err)
	}
}

func TestErrors(t *testing.T) {
	if _, err := xmltree.ParseString(""); !errors.Is(err, xmltree.ErrNoElement) {
		t.Errorf("wrong error for empty input: %v", err)
	}
	if _, err := xmltree.ParseString("<a><b></b>"); err == nil {
		t.Errorf("expected error for truncated input")
	}
}

func TestTokenReader(t *testing.T) {
	el, err := xmltree.ParseString(`<a xmlns="urn:x" id="1">t<b>u</b></a>`)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	var b strings.Builder
	e := xml.NewEncoder(&b)
	if _, err := xmlstream.Copy(e, el.TokenReader()); err != nil {
		t.Fatalf("error encoding: %v", err)
	}
	if err := e.Flush(); err != nil {
		t.Fatalf("error flushing: %v", err)
	}
	const want = `<a xmlns="urn:x" id="1">t<b xmlns="urn:x">u</b></a>`
	if out := b.String(); out != want {
		t.Errorf("wrong output:\nwant=%q,\n got=%q", want, out)
	}
}

func TestDecodeStart(t *testing.T) {
	d := xml.NewDecoder(strings.NewReader(`<a><b>x</b></a>`))
	// Skip to b and decode only that element.
	for {
		tok, err := d.Token()
		if err != nil {
			t.Fatalf("error reading: %v", err)
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "b" {
			el, err := xmltree.Decode(d, &start)
			if err != nil {
				t.Fatalf("error decoding: %v", err)
			}
			if el.Text() != "x" {
				t.Errorf("wrong text: %q", el.Text())
			}
			return
		}
	}
}

// lastWithEOF returns its final token together with io.EOF.
type lastWithEOF []xml.Token

func (r *lastWithEOF) Token() (xml.Token, error) {
	switch len(*r) {
	case 0:
		return nil, io.EOF
	case 1:
		tok := (*r)[0]
		*r = nil
		return tok, io.EOF
	}
	tok := (*r)[0]
	*r = (*r)[1:]
	return tok, nil
}

func TestDecodeFinalTokenWithEOF(t *testing.T) {
	a := xml.StartElement{Name: xml.Name{Local: "a"}}
	b := xml.StartElement{Name: xml.Name{Local: "b"}}
	r := lastWithEOF{a, b, xml.CharData("x"), b.End(), a.End()}
	el, err := xmltree.Decode(&r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el.ChildText("b") != "x" {
		t.Errorf("wrong child text: %q", el.ChildText("b"))
	}

	r = lastWithEOF{a, b}
	if _, err = xmltree.Decode(&r, nil); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("wrong error for truncated stream: want=%v, got=%v", io.ErrUnexpectedEOF, err)
	}

	r = lastWithEOF{a}
	el, err = xmltree.Decode(&r, nil)
	if !errors.Is(err, io.ErrUnexpectedEOF) || el == nil || el.Local() != "a" {
		t.Errorf("wrong result for lone start element: %v, %v", el, err)
	}

	// Element token readers end with a multi reader.
	r2 := xmlstream.Wrap(xmlstream.Token(xml.CharData("y")), a)
	el, err = xmltree.Decode(r2, nil)
	if err != nil || el.Text() != "y" {
		t.Errorf("wrong result decoding a wrapped stream: %v, %v", el, err)
	}
}

func TestAttrValueSkipsDeclarations(t *testing.T) {
	el, err := xmltree.ParseString(`<item xmlns:node="urn:example" node="i1"/>`)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	if v, ok := el.AttrValue("node"); !ok || v != "i1" {
		t.Errorf("wrong node attribute: %q, %t", v, ok)
	}
}
