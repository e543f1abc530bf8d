package transport

import (
	"bytes"
	"encoding/json"
)

// Payload is a leniently decoded 2xx response body.
//
// An empty body decodes to an empty payload, a JSON body to its value
// (numbers kept as json.Number), and anything else to a raw text wrapper.
type Payload struct {
	body  []byte
	value any
	raw   bool
}

// Decode builds a Payload from a response body.
func Decode(body []byte) *Payload {
	p := &Payload{body: body}
	if len(bytes.TrimSpace(body)) == 0 {
		return p
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		p.raw = true
		return p
	}
	p.value = v
	return p
}

// IsEmpty reports whether the body was empty or JSON null.
func (p *Payload) IsEmpty() bool {
	return !p.raw && p.value == nil
}

// IsRaw reports whether the body was not valid JSON.
func (p *Payload) IsRaw() bool {
	return p.raw
}

// Text returns the raw body for non-JSON payloads, or the value of a JSON string.
func (p *Payload) Text() string {
	if p.raw {
		return string(p.body)
	}
	if s, ok := p.value.(string); ok {
		return s
	}
	return ""
}

// Map returns the payload as a JSON object, or nil.
func (p *Payload) Map() map[string]any {
	m, _ := p.value.(map[string]any)
	return m
}

// List returns the payload as a JSON array, or nil.
func (p *Payload) List() []any {
	l, _ := p.value.([]any)
	return l
}

// Value returns the decoded JSON value.
func (p *Payload) Value() any {
	return p.value
}

// Bytes returns the original body.
func (p *Payload) Bytes() []byte {
	return p.body
}
