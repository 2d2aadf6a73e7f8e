package roster

import "strings"

const keySeparator = ":"

// PK is a store key split into ":" separated segments. Segments that look
// like integers are ordered numerically, so shift:2 sorts before shift:10,
// and ahead of any non numeric segment.
type PK struct {
	key      string
	segments []string
}

func newPK(k string) PK {
	return PK{
		key:      k,
		segments: strings.Split(k, keySeparator),
	}
}

func (pk *PK) String() string {
	return pk.key
}

// Collection is the first key segment.
func (pk *PK) Collection() string {
	return pk.segments[0]
}

// ID is the last key segment.
func (pk *PK) ID() string {
	return pk.segments[len(pk.segments)-1]
}

// HasPrefix reports whether every segment of prefix equals the
// corresponding leading segment of pk.
func (pk *PK) HasPrefix(prefix *PK) bool {
	if len(prefix.segments) > len(pk.segments) {
		return false
	}

	for i := range prefix.segments {
		if prefix.segments[i] != pk.segments[i] {
			return false
		}
	}

	return true
}

func (pk *PK) Less(other PK) bool {
	l := smallestSegmentLen(pk.segments, other.segments)

	for i := 0; i < l; i++ {
		if c := compareSegments(pk.segments[i], other.segments[i]); c != 0 {
			return c < 0
		}
	}

	return len(other.segments) > len(pk.segments)
}

// compareSegments orders integer segments numerically and before every
// other segment, which compare as plain strings.
func compareSegments(a, b string) int {
	aInt, bInt := isIntSegment(a), isIntSegment(b)

	switch {
	case aInt && bInt:
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		return strings.Compare(a, b)
	case aInt:
		return -1
	case bInt:
		return 1
	}

	return strings.Compare(a, b)
}

func byPrimaryKeys(a, b interface{}) bool {
	i1, i2 := a.(*entry), b.(*entry)
	return i1.key.Less(i2.key)
}

func smallestSegmentLen(a, b []string) int {
	if len(a) > len(b) {
		return len(b)
	}

	return len(a)
}

// isIntSegment accepts digits without a leading zero, so "007" and "0"
// stay strings and two integer segments are equal only when identical.
func isIntSegment(s string) bool {
	if s == "" || s[0] == '0' {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
