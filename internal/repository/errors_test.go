package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Error(t *testing.T) {
	testCases := map[string]struct {
		err      error
		expected string
	}{
		"should format not found message with all fields": {
			err: &NotFoundError{
				Resource: "user",
				Key:      "username",
				Value:    "jdoe",
			},
			expected: "user with username jdoe not found",
		},
		"should format already exists message with all fields": {
			err: &AlreadyExistsError{
				Resource: "order",
				Key:      "orderId",
				Value:    "o-1",
			},
			expected: "order with orderId o-1 already exists",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}
