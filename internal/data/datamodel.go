package data

import "encoding/json"

// Entry is one persisted document, its value is kept as raw JSON.
type Entry struct {
	Key   string          `json:"k"`
	Value json.RawMessage `json:"v"`
}

// Sequences holds the last issued numeric id per collection.
type Sequences map[string]uint64

type Snapshot struct {
	Entries []Entry   `json:"entries"`
	Seq     Sequences `json:"seq"`
}

func (s *Snapshot) Len() int {
	return len(s.Entries)
}
