// Package gcd implements the "toolbox gcd" command.
package gcd

import (
	"fmt"
	"io"

	"toolbox/internal/numtheory"
	"toolbox/internal/prompt"
)

var labels = []string{"Enter first number: ", "Enter second number: ", "Enter third number: "}

// Run reads three integers from args, or from r when no args are given, and
// prints their GCD and LCM to out.
func Run(args []string, r *prompt.Reader, out io.Writer) error {
	n, err := r.Ints(args, labels...)
	if err != nil {
		return err
	}

	res, err := numtheory.Triple(n[0], n[1], n[2])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "gcd and lcm of %d, %d, %d are %d, %d respectively\n",
		n[0], n[1], n[2], res.GCD, res.LCM)
	return nil
}
