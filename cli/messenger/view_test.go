package messenger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "with microseconds", raw: "2026-01-02 15:04:05.123456", want: "15:04"},
		{name: "without fraction", raw: "2026-01-02 15:04:05", want: "15:04"},
		{name: "rfc3339", raw: "2026-01-02T15:04:05Z", want: "15:04"},
		{name: "unparseable falls through", raw: "yesterday", want: "yesterday"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, formatTimestamp(test.raw))
		})
	}
}
