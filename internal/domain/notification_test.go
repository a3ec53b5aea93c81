package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateBody_ShortBody_Unchanged(t *testing.T) {
	assert.Equal(t, "hello", TruncateBody("hello"))
}

func TestTruncateBody_ExactLimit_Unchanged(t *testing.T) {
	body := strings.Repeat("a", MaxBodyLength)
	assert.Equal(t, body, TruncateBody(body))
}

func TestTruncateBody_OverLimit_CutWithEllipsis(t *testing.T) {
	body := strings.Repeat("a", MaxBodyLength+50)
	got := TruncateBody(body)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, MaxBodyLength+1, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("a", MaxBodyLength), strings.TrimSuffix(got, "…"))
}

func TestTruncateBody_MultibyteRunes_CountedAsRunes(t *testing.T) {
	body := strings.Repeat("é", MaxBodyLength+1)
	got := TruncateBody(body)
	assert.Equal(t, MaxBodyLength+1, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
}
