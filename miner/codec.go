// SPDX-License-Identifier: MIT
// Package: fuzzar/miner
//
// codec.go — compact msgpack persistence of a mined rule list.
//
// Stream layout:
//   string  "fuzzar/rules"
//   int     format version (1)
//   array   rules; each rule is
//     int n, n × (variable, label)   antecedent
//     int m, m × (variable, label)   consequent
//     float64 support, confidence, certainty factor

package miner

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/fuzzar/fuzzify"
)

// ErrBadEncoding is returned by DecodeRules for streams it did not write.
var ErrBadEncoding = errors.New("miner: unrecognized rule encoding")

const (
	codecMagic   = "fuzzar/rules"
	codecVersion = 1
)

// EncodeRules writes rules to w in order.
func EncodeRules(w io.Writer, rules []Rule) error {
	e := msgpack.NewEncoder(w)
	if err := e.EncodeString(codecMagic); err != nil {
		return err
	}
	if err := e.EncodeInt(codecVersion); err != nil {
		return err
	}
	if err := e.EncodeArrayLen(len(rules)); err != nil {
		return err
	}
	for i := range rules {
		if err := e.Encode(&rules[i]); err != nil {
			return fmt.Errorf("EncodeRules: rule %d: %w", i, err)
		}
	}
	return nil
}

// DecodeRules reads a list written by EncodeRules.
func DecodeRules(r io.Reader) ([]Rule, error) {
	d := msgpack.NewDecoder(r)
	magic, err := d.DecodeString()
	if err != nil || magic != codecMagic {
		return nil, fmt.Errorf("DecodeRules: missing header: %w", ErrBadEncoding)
	}
	version, err := d.DecodeInt()
	if err != nil {
		return nil, err
	}
	if version != codecVersion {
		return nil, fmt.Errorf("DecodeRules: version %d: %w", version, ErrBadEncoding)
	}
	n, err := d.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("DecodeRules: nil rule array: %w", ErrBadEncoding)
	}
	rules := make([]Rule, n)
	for i := range rules {
		if err := d.Decode(&rules[i]); err != nil {
			return nil, fmt.Errorf("DecodeRules: rule %d: %w", i, err)
		}
	}
	return rules, nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (r *Rule) EncodeMsgpack(e *msgpack.Encoder) error {
	if err := encodeItems(e, r.Antecedent); err != nil {
		return err
	}
	if err := encodeItems(e, r.Consequent); err != nil {
		return err
	}
	for _, f := range [...]float64{r.Support, r.Confidence, r.CertaintyFactor} {
		if err := e.EncodeFloat64(f); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (r *Rule) DecodeMsgpack(d *msgpack.Decoder) error {
	var err error
	if r.Antecedent, err = decodeItems(d); err != nil {
		return err
	}
	if r.Consequent, err = decodeItems(d); err != nil {
		return err
	}
	for _, f := range [...]*float64{&r.Support, &r.Confidence, &r.CertaintyFactor} {
		if *f, err = d.DecodeFloat64(); err != nil {
			return err
		}
	}
	return nil
}

func encodeItems(e *msgpack.Encoder, items []fuzzify.Item) error {
	if err := e.EncodeInt(int64(len(items))); err != nil {
		return err
	}
	for _, it := range items {
		if err := e.EncodeString(it.Variable); err != nil {
			return err
		}
		if err := e.EncodeString(it.Label); err != nil {
			return err
		}
	}
	return nil
}

func decodeItems(d *msgpack.Decoder) ([]fuzzify.Item, error) {
	n, err := d.DecodeInt()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("negative item count %d: %w", n, ErrBadEncoding)
	}
	items := make([]fuzzify.Item, n)
	for i := range items {
		if items[i].Variable, err = d.DecodeString(); err != nil {
			return nil, err
		}
		if items[i].Label, err = d.DecodeString(); err != nil {
			return nil, err
		}
	}
	return items, nil
}
