// Package planet implements the "toolbox planet" command.
package planet

import (
	"errors"
	"fmt"
	"io"

	"toolbox/internal/planet"
	"toolbox/internal/prompt"
)

var (
	errNegativeRadius = errors.New("radius must not be negative")
	errPeriod         = errors.New("rotation period must be positive")
)

// Run reads a radius and rotation period from args, or from r when no args
// are given, and prints the planet's surface area and rotation frequency.
func Run(args []string, r *prompt.Reader, out io.Writer) error {
	n, err := r.Ints(args, "Radius of Planet=", "Rotation Period Of Planet=")
	if err != nil {
		return err
	}
	if n[0] < 0 {
		return fmt.Errorf("radius %d: %w", n[0], errNegativeRadius)
	}
	if n[1] <= 0 {
		return fmt.Errorf("period %d: %w", n[1], errPeriod)
	}

	p := planet.New(n[0], n[1])
	fmt.Fprintf(out, "Surface Area %d Sqm\n", p.SurfaceArea())
	fmt.Fprintf(out, "Rotation Frequency %s/s\n", planet.FormatFrequency(p.RotationFrequency()))
	return nil
}
