// Copyright 2020 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package xmpptest

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Tokens is a slice of XML tokens that can also act as an xml.TokenReader by
// popping tokens from itself.
type Tokens []xml.Token

func (r *Tokens) Token() (xml.Token, error) {
	if len(*r) == 0 {
		return nil, io.EOF
	}

	var t xml.Token
	t, *r = (*r)[0], (*r)[1:]
	return t, nil
}

// ReadEncoder reads the tokens of an XML string and records every token
// encoded to it.
// It can stand in for the xmlstream.TokenReadEncoder passed to stanza
// handlers.
type ReadEncoder struct {
	xml.TokenReader

	// Out holds a copy of every token encoded.
	Out Tokens
}

// NewReadEncoder returns a ReadEncoder that reads from s.
func NewReadEncoder(s string) *ReadEncoder {
	return &ReadEncoder{TokenReader: xml.NewDecoder(strings.NewReader(s))}
}

// EncodeToken records a copy of t.
func (r *ReadEncoder) EncodeToken(t xml.Token) error {
	r.Out = append(r.Out, xml.CopyToken(t))
	return nil
}

// EncodeElement marshals v and records the resulting tokens.
func (r *ReadEncoder) EncodeElement(v interface{}, start xml.StartElement) error {
	var buf bytes.Buffer
	if err := xml.NewEncoder(&buf).EncodeElement(v, start); err != nil {
		return err
	}
	return r.record(&buf)
}

// Encode marshals v and records the resulting tokens.
func (r *ReadEncoder) Encode(v interface{}) error {
	var buf bytes.Buffer
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	return r.record(&buf)
}

func (r *ReadEncoder) record(buf *bytes.Buffer) error {
	d := xml.NewDecoder(buf)
	for {
		tok, err := d.Token()
		switch err {
		case nil:
		case io.EOF:
			return nil
		default:
			return err
		}
		r.Out = append(r.Out, xml.CopyToken(tok))
	}
}
