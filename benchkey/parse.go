// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchkey decodes the slash-separated names that the
// benchmark binary gives to each measurement.
//
// Two name shapes are accepted, distinguished only by the number of
// "/"-separated segments:
//
//	operation/variant/size_aggregate
//	operation/variant/size/index_aggregate
//
// In the four-segment form, index is the number of worker threads
// started in addition to the calling thread. The decoded variant
// carries the total thread count, so "Multiplication/YABIL_parallel/64/3_mean"
// decodes to variant "YABIL_parallel_4_threads".
package benchkey

import (
	"fmt"
	"strconv"
	"strings"
)

// A Key is the decoded form of a measurement name.
type Key struct {
	Operation string // e.g. "Addition"
	Variant   string // e.g. "YABIL" or "YABIL_parallel_4_threads"
	Size      int    // operand size in bits
	Aggregate string // statistic name, e.g. "mean", "median", "stddev"

	// Threads is the total thread count for names in the
	// four-segment form and 0 otherwise.
	Threads int

	// RealTime reports whether the name carried the wall-clock
	// marker segment.
	RealTime bool
}

// realTimeSegment is the segment the benchmark library inserts before
// the aggregate suffix of benchmarks timed by wall clock, as in
// "Addition/YABIL/16/real_time_mean".
const realTimeSegment = "/real_time"

// String returns the canonical three-segment form of k.
// The thread count, if any, is already folded into Variant.
func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%d_%s", k.Operation, k.Variant, k.Size, k.Aggregate)
}

// A KeyFormatError reports a measurement name that does not match
// either name shape.
type KeyFormatError struct {
	Name string // the raw name, as produced by the benchmark binary
	Msg  string
}

func (e *KeyFormatError) Error() string {
	return fmt.Sprintf("bad benchmark name %q: %s", e.Name, e.Msg)
}

// ThreadSuffix returns the variant suffix used for a variant run on
// threads threads.
func ThreadSuffix(threads int) string {
	return "_" + strconv.Itoa(threads) + "_threads"
}

// Parse decodes name into a Key.
// A "/real_time" marker is removed before the segments are counted.
func Parse(name string) (Key, error) {
	return parse(name, true)
}

// ParseRun decodes the name of a single repetition, which carries no
// aggregate suffix, as in "Addition/YABIL/16". The returned Key has an
// empty Aggregate.
func ParseRun(name string) (Key, error) {
	return parse(name, false)
}

func parse(name string, aggregate bool) (Key, error) {
	bare := strings.TrimSuffix(name, realTimeSegment)
	if aggregate {
		bare = strings.Replace(name, realTimeSegment+"_", "_", 1)
	}
	segs := strings.Split(bare, "/")
	if n := len(segs); n != 3 && n != 4 {
		return Key{}, &KeyFormatError{name, fmt.Sprintf("have %d segments, want 3 or 4", n)}
	}
	var agg string
	if aggregate {
		head, a, err := splitAggregate(segs[len(segs)-1])
		if err != nil {
			return Key{}, &KeyFormatError{name, err.Error()}
		}
		segs[len(segs)-1], agg = head, a
	}
	var (
		k   Key
		err error
	)
	if len(segs) == 3 {
		k, err = parse3(segs)
	} else {
		k, err = parse4(segs)
	}
	if err != nil {
		return Key{}, &KeyFormatError{name, err.Error()}
	}
	k.Aggregate = agg
	k.RealTime = bare != name
	return k, nil
}

// parse3 handles operation/variant/size.
func parse3(segs []string) (Key, error) {
	op, variant, err := opVariant(segs)
	if err != nil {
		return Key{}, err
	}
	size, err := parseSize(segs[2])
	if err != nil {
		return Key{}, err
	}
	return Key{Operation: op, Variant: variant, Size: size}, nil
}

// parse4 handles operation/variant/size/index.
func parse4(segs []string) (Key, error) {
	op, base, err := opVariant(segs)
	if err != nil {
		return Key{}, err
	}
	size, err := parseSize(segs[2])
	if err != nil {
		return Key{}, err
	}
	idx, err := strconv.Atoi(segs[3])
	if err != nil || idx < 0 {
		return Key{}, fmt.Errorf("thread index %q is not a non-negative integer", segs[3])
	}
	threads := idx + 1
	return Key{
		Operation: op,
		Variant:   base + ThreadSuffix(threads),
		Size:      size,
		Threads:   threads,
	}, nil
}

func opVariant(segs []string) (op, variant string, err error) {
	if segs[0] == "" {
		return "", "", fmt.Errorf("empty operation")
	}
	if segs[1] == "" {
		return "", "", fmt.Errorf("empty variant")
	}
	return segs[0], segs[1], nil
}

// splitAggregate splits seg on its last underscore.
func splitAggregate(seg string) (head, agg string, err error) {
	i := strings.LastIndexByte(seg, '_')
	if i < 0 {
		return "", "", fmt.Errorf("segment %q has no _aggregate suffix", seg)
	}
	if i == len(seg)-1 {
		return "", "", fmt.Errorf("segment %q has an empty aggregate", seg)
	}
	return seg[:i], seg[i+1:], nil
}

func parseSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("size %q is not an integer", s)
	}
	return n, nil
}
