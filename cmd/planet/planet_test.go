package planet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbox/internal/prompt"
)

func TestRun_Prompted(t *testing.T) {
	var out bytes.Buffer
	r := prompt.New(strings.NewReader("17\n3\n"), &out, true)

	require.NoError(t, Run(nil, r, &out))
	assert.Equal(t,
		"Radius of Planet=Rotation Period Of Planet="+
			"Surface Area 3629 Sqm\nRotation Frequency 2.0933333333333333/s\n",
		out.String())
}

func TestRun_Args(t *testing.T) {
	var out bytes.Buffer
	r := prompt.New(strings.NewReader(""), &out, false)

	require.NoError(t, Run([]string{"0", "1"}, r, &out))
	assert.Equal(t, "Surface Area 0 Sqm\nRotation Frequency 6.28/s\n", out.String())
}

func TestRun_Rejects(t *testing.T) {
	cases := []struct {
		args []string
		is   error
	}{
		{[]string{"-1", "3"}, errNegativeRadius},
		{[]string{"17", "0"}, errPeriod},
		{[]string{"17", "-3"}, errPeriod},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		r := prompt.New(strings.NewReader(""), &out, false)

		err := Run(tc.args, r, &out)
		assert.ErrorIs(t, err, tc.is, "%v", tc.args)
		assert.Empty(t, out.String())
	}
}
