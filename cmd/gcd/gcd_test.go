package gcd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbox/internal/numtheory"
	"toolbox/internal/prompt"
)

func TestRun_Prompted(t *testing.T) {
	var out bytes.Buffer
	r := prompt.New(strings.NewReader("4\n6\n8\n"), &out, true)

	require.NoError(t, Run(nil, r, &out))
	assert.Equal(t,
		"Enter first number: Enter second number: Enter third number: "+
			"gcd and lcm of 4, 6, 8 are 2, 24 respectively\n",
		out.String())
}

func TestRun_Piped(t *testing.T) {
	var out bytes.Buffer
	r := prompt.New(strings.NewReader("12\n18\n30"), &out, false)

	require.NoError(t, Run(nil, r, &out))
	assert.Equal(t, "gcd and lcm of 12, 18, 30 are 6, 180 respectively\n", out.String())
}

func TestRun_Args(t *testing.T) {
	var out bytes.Buffer
	r := prompt.New(strings.NewReader(""), &out, true)

	require.NoError(t, Run([]string{"7", "7", "7"}, r, &out))
	assert.Equal(t, "gcd and lcm of 7, 7, 7 are 7, 7 respectively\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	cases := []struct {
		name  string
		args  []string
		input string
		is    error
	}{
		{name: "zero", args: []string{"0", "6", "8"}, is: numtheory.ErrNonPositive},
		{name: "negative", input: "4\n-6\n8\n", is: numtheory.ErrNonPositive},
		{name: "short input", input: "4\n6\n", is: prompt.ErrNoInput},
		{name: "not a number", input: "four\n"},
		{name: "wrong arg count", args: []string{"1", "2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			r := prompt.New(strings.NewReader(tc.input), &out, false)

			err := Run(tc.args, r, &out)
			require.Error(t, err)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
			assert.Empty(t, out.String())
		})
	}
}

func TestRun_ErrorNamesOperandsOnce(t *testing.T) {
	var out bytes.Buffer
	r := prompt.New(strings.NewReader(""), &out, false)

	err := Run([]string{"4", "0", "8"}, r, &out)
	assert.EqualError(t, err, "4, 0, 8: numbers must be positive")
}
