package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/terminal-sim/terminal-sim/sim/terminal"
)

const horizonPrompt = "Enter the simulation time in minutes: "

// parseHorizon converts operator input into a horizon in minutes.
func parseHorizon(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: no value entered", terminal.ErrInvalidHorizon)
	}
	h, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", terminal.ErrInvalidHorizon, raw)
	}
	if err := terminal.ValidateHorizon(h); err != nil {
		return 0, err
	}
	return h, nil
}

// promptHorizon asks the operator for the horizon on w and reads one line from r.
func promptHorizon(r io.Reader, w io.Writer) (float64, error) {
	fmt.Fprint(w, horizonPrompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, fmt.Errorf("reading simulation time: %w", err)
	}
	return parseHorizon(line)
}
