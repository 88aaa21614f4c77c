package storage

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswersRenderAsOrderedPairs(t *testing.T) {
	u := User{UID: "eve", Answers: Answers{3: false, 1: true}}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	assert.Equal(t, `{"uid":"eve","answers":[{"key":1,"value":true},{"key":3,"value":false}]}`, string(data))
}

func TestEmptyAnswersRenderAsEmptyArray(t *testing.T) {
	for name, answers := range map[string]Answers{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(User{UID: "adam", Answers: answers})
			require.NoError(t, err)
			assert.Equal(t, `{"uid":"adam","answers":[]}`, string(data))
		})
	}
}

func TestQuestionShape(t *testing.T) {
	data, err := json.Marshal(Question{QID: 7, Text: "Why?"})
	require.NoError(t, err)

	assert.Equal(t, `{"qid":7,"text":"Why?"}`, string(data))
}

func TestParseQID(t *testing.T) {
	tests := map[string]QID{
		"":                      QIDNone,
		"0":                     QIDNone,
		"abc":                   QIDNone,
		"-0":                    QIDNone,
		"+":                     QIDNone,
		"1":                     1,
		"42":                    42,
		"+1":                    1,
		"1abc":                  1,
		" \t7":                  7,
		"-1":                    QID(math.MaxUint64),
		"99999999999999999999":  QID(math.MaxUint64),
		"-99999999999999999999": QID(math.MaxUint64),
	}
	for raw, want := range tests {
		assert.Equal(t, want, parseQID(raw), "raw=%q", raw)
	}
}
