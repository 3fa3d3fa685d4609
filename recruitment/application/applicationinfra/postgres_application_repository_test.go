package applicationinfra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"grace":        "grace",
		"100%":         `100\%`,
		"a_b":          `a\_b`,
		`back\slash`:   `back\\slash`,
		`%_\ combined`: `\%\_\\ combined`,
		"":             "",
	}

	for input, expected := range cases {
		assert.Equal(t, expected, escapeLike(input), "input %q", input)
	}
}
