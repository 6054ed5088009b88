package cnv

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesOnlyOwnSentinel(t *testing.T) {
	err := &Error{Kind: KindInvalidRange, Input: "chr1:5-1", Start: 5, End: 1}

	assert.True(t, errors.Is(err, ErrInvalidRange))
	assert.False(t, errors.Is(err, ErrMalformedCoordinate))
	assert.False(t, errors.Is(err, ErrInvalidEventType))
}

func TestIsKind_Wrapped(t *testing.T) {
	err := fmt.Errorf("annotate: %w", &Error{Kind: KindInvalidEventType, Input: "amp"})

	assert.True(t, IsKind(err, KindInvalidEventType))
	assert.False(t, IsKind(err, KindInvalidRange))
	assert.False(t, IsKind(errors.New("other"), KindInvalidEventType))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&Error{Kind: KindMalformedCoordinate, Input: "chr16"}, `Invalid coordinate "chr16". Expected a form like chr16:15489724-16367962.`},
		{&Error{Kind: KindInvalidRange, Input: "chr16:9-1", Start: 9, End: 1}, "Start position (9) must be less than end position (1)."},
		{&Error{Kind: KindInvalidEventType, Input: "amplification"}, `Invalid event type "amplification". Use 'duplication' or 'deletion'.`},
		{errors.New("disk on fire"), "Annotation failed: disk on fire"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Message(tt.err))
	}
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, `malformed coordinate "x"`, (&Error{Kind: KindMalformedCoordinate, Input: "x"}).Error())
	assert.Equal(t, `invalid event type "amp"`, (&Error{Kind: KindInvalidEventType, Input: "amp"}).Error())
	assert.Contains(t, (&Error{Kind: KindInvalidRange, Input: "1:5-1", Start: 5, End: 1}).Error(), "start 5 must be less than end 1")
}
