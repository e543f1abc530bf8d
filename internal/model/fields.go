// Package model holds the eFaktura data objects.
//
// Every object is built from a decoded JSON map by an explicit FromMap
// function and turned back into a map by ToMap. Unknown keys are ignored,
// missing keys leave fields nil, and nil fields are never serialized.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/rezonia/efaktura/internal/money"
)

// TimestampLayout is the canonical serialized form of date and time fields.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts the date formats the eFaktura API emits. Values without
// a zone are read as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// FormatTime renders t in TimestampLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimestampLayout)
}

var (
	errNotObject = errors.New("not an object")
	errNotList   = errors.New("not a list")
	errNotScalar = errors.New("not a scalar")
)

// reader pulls typed fields out of a decoded map and keeps the first failure.
type reader struct {
	typ string
	m   map[string]any
	err error
}

func newReader(typ string, m map[string]any) *reader {
	return &reader{typ: typ, m: m}
}

func (r *reader) Err() error {
	return r.err
}

// lookup matches the exact key first, then any key that differs only in case.
func (r *reader) lookup(key string) (any, bool) {
	if v, ok := r.m[key]; ok {
		return v, v != nil
	}
	for k, v := range r.m {
		if strings.EqualFold(k, key) {
			return v, v != nil
		}
	}
	return nil, false
}

func (r *reader) fail(key string, v any, cause error) {
	if r.err == nil {
		r.err = NewFieldError(r.typ, key, v, cause)
	}
}

func (r *reader) String(key string) *string {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	switch v.(type) {
	case map[string]any, []any:
		r.fail(key, v, errNotScalar)
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		r.fail(key, v, err)
		return nil
	}
	return &s
}

func (r *reader) Int(key string) *int64 {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	n, err := toInt64(v)
	if err != nil {
		r.fail(key, v, err)
		return nil
	}
	return &n
}

func (r *reader) Bool(key string) *bool {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		r.fail(key, v, err)
		return nil
	}
	return &b
}

func (r *reader) Decimal(key string) *decimal.Decimal {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	d, err := money.Parse(v)
	if err != nil {
		r.fail(key, v, err)
		return nil
	}
	return &d
}

func (r *reader) Time(key string) *time.Time {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case time.Time:
		return &t
	case string:
		if t == "" {
			return nil
		}
		parsed, err := ParseTime(t)
		if err != nil {
			r.fail(key, v, err)
			return nil
		}
		return &parsed
	}
	r.fail(key, v, errNotScalar)
	return nil
}

func (r *reader) Object(key string) map[string]any {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		r.fail(key, v, errNotObject)
		return nil
	}
	return m
}

func (r *reader) List(key string) []any {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	l, isList := v.([]any)
	if !isList {
		r.fail(key, v, errNotList)
		return nil
	}
	return l
}

func (r *reader) Ints(key string) []int64 {
	items := r.List(key)
	if items == nil {
		return nil
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		n, err := toInt64(item)
		if err != nil {
			r.fail(key, item, err)
			return nil
		}
		out = append(out, n)
	}
	return out
}

func (r *reader) wrap(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func toInt64(v any) (int64, error) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}
	return cast.ToInt64E(v)
}

func readEnum[T ~string](r *reader, key string) *T {
	s := r.String(key)
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

func readObject[T any](r *reader, key string, from func(map[string]any) (*T, error)) *T {
	m := r.Object(key)
	if m == nil {
		return nil
	}
	v, err := from(m)
	if err != nil {
		r.wrap(err)
		return nil
	}
	return v
}

func readList[T any](r *reader, key string, from func(map[string]any) (*T, error)) []T {
	items := r.List(key)
	if items == nil {
		return nil
	}
	out, err := HydrateList(items, from)
	if err != nil {
		r.wrap(err)
		return nil
	}
	return out
}

// HydrateList converts each element of items, in order. Every element must be an object.
func HydrateList[T any](items []any, from func(map[string]any) (*T, error)) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, NewFieldError(fmt.Sprintf("%T", *new(T)), fmt.Sprintf("[%d]", i), item, errNotObject)
		}
		v, err := from(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// writer builds a serialized map, skipping nil fields.
type writer map[string]any

func (w writer) String(key string, v *string) {
	if v != nil {
		w[key] = *v
	}
}

func (w writer) Int(key string, v *int64) {
	if v != nil {
		w[key] = *v
	}
}

func (w writer) Bool(key string, v *bool) {
	if v != nil {
		w[key] = *v
	}
}

func (w writer) Decimal(key string, v *decimal.Decimal) {
	if v != nil {
		w[key] = money.Number(*v)
	}
}

func (w writer) Time(key string, v *time.Time) {
	if v != nil {
		w[key] = FormatTime(*v)
	}
}

func (w writer) Ints(key string, v []int64) {
	if v == nil {
		return
	}
	out := make([]any, len(v))
	for i, n := range v {
		out[i] = n
	}
	w[key] = out
}

func writeEnum[T ~string](w writer, key string, v *T) {
	if v != nil {
		w[key] = string(*v)
	}
}

type mapper interface {
	ToMap() map[string]any
}

func writeList[T mapper](w writer, key string, items []T) {
	if items == nil {
		return
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item.ToMap()
	}
	w[key] = out
}

// toJSON and fromJSON back the MarshalJSON and UnmarshalJSON methods.
func toJSON(m map[string]any) ([]byte, error) {
	return json.Marshal(m)
}

func fromJSON[T any](data []byte, from func(map[string]any) (*T, error)) (*T, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return from(m)
}

// Ptr returns a pointer to v, for building objects by hand.
func Ptr[T any](v T) *T {
	return &v
}

// IDsFromList converts a decoded JSON array of ids.
func IDsFromList(items []any) ([]int64, error) {
	ids := make([]int64, 0, len(items))
	for i, item := range items {
		id, err := toInt64(item)
		if err != nil {
			return nil, NewFieldError("[]int64", fmt.Sprintf("[%d]", i), item, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
