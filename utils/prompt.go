package utils

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/rules"
)

// Prompt asks for the main settings on out, reading answers from in.
// An empty answer keeps the current value; an invalid one is asked again.
// End of input keeps the remaining values unchanged.
func Prompt(in io.Reader, out io.Writer, c *Config) error {
	var (
		scanner = bufio.NewScanner(in)
		eof     bool
	)

	ask := func(question string, apply func(string) error) error {
		for !eof {
			if _, err := fmt.Fprint(out, question); err != nil {
				return errors.Wrap(err, "[Prompt] failed to write question")
			}
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return errors.Wrap(err, "[Prompt] failed to read answer")
				}
				eof = true
				fmt.Fprintln(out)
				return nil
			}
			answer := strings.TrimSpace(scanner.Text())
			if answer == "" {
				return nil
			}
			if err := apply(answer); err != nil {
				fmt.Fprintf(out, "Invalid value: %v\n", err)
				continue
			}
			return nil
		}
		return nil
	}

	fmt.Fprintln(out, "\n=== Simulation Setup ===")
	fmt.Fprintln(out, "Press Enter to use default values.")
	fmt.Fprintln(out)

	steps := []struct {
		question string
		apply    func(string) error
	}{
		{
			fmt.Sprintf("Rule variant (default: %s) [23/3, 16/6, 23/36]: ", c.Rule),
			func(s string) error {
				if _, err := rules.Lookup(s); err != nil {
					return err
				}
				c.Rule = s
				return nil
			},
		},
		{
			fmt.Sprintf("Grid width (default: %d): ", c.Width),
			positiveInt(&c.Width),
		},
		{
			fmt.Sprintf("Grid height (default: %d): ", c.Height),
			positiveInt(&c.Height),
		},
		{
			fmt.Sprintf("Initial life density 0-1 (default: %v): ", c.RandomDensity),
			func(s string) error {
				d, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return err
				}
				if d < 0 || d > 1 {
					return errors.Errorf("%v is outside [0,1]", d)
				}
				c.RandomDensity = d
				return nil
			},
		},
		{
			fmt.Sprintf("Generation delay in seconds (default: %v): ", c.FrameRate.Seconds()),
			func(s string) error {
				secs, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return err
				}
				if secs < 0 {
					return errors.Errorf("delay %v is negative", secs)
				}
				c.FrameRate = time.Duration(secs * float64(time.Second))
				return nil
			},
		},
	}

	for _, step := range steps {
		if err := ask(step.question, step.apply); err != nil {
			return err
		}
	}
	return nil
}

func positiveInt(dst *int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		if n <= 0 {
			return errors.Errorf("%d is not positive", n)
		}
		*dst = n
		return nil
	}
}
