package storage

import (
	"encoding/json"
	"sort"
)

type UID = string

// QID identifies a question. QIDNone is never assigned to a real question.
type QID uint64

const QIDNone QID = 0

type Question struct {
	QID  QID    `json:"qid"`
	Text string `json:"text"`
}

type User struct {
	UID     UID     `json:"uid"`
	Answers Answers `json:"answers"`
}

// Answers maps a question to the user's agree (true) or disagree (false).
// It renders as an array of {"key","value"} pairs ordered by qid.
type Answers map[QID]bool

type answerPair struct {
	Key   QID  `json:"key"`
	Value bool `json:"value"`
}

func (a Answers) MarshalJSON() ([]byte, error) {
	pairs := make([]answerPair, 0, len(a))
	for qid, agree := range a {
		pairs = append(pairs, answerPair{Key: qid, Value: agree})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return json.Marshal(pairs)
}
