// Package selector implements the numbered interface menu the operator uses
// to assign the metadata and data roles.
package selector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/NVIDIA/swnetcfg/pkg/console"
	"github.com/NVIDIA/swnetcfg/pkg/defaults"
	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
	"github.com/NVIDIA/swnetcfg/pkg/netif"
)

// Role is the traffic class an interface is selected for.
type Role string

const (
	RoleMetadata Role = "metadata"
	RoleData     Role = "data"
)

// Outcome tells whether a prompt produced a selection.
type Outcome int

const (
	ValidSelection Outcome = iota
	OutOfAttempts
)

// String returns the outcome name.
func (o Outcome) String() string {
	if o == ValidSelection {
		return "valid-selection"
	}
	return "out-of-attempts"
}

// Result is the outcome of one role prompt.
type Result struct {
	Outcome   Outcome
	Role      Role
	Index     int
	Interface netif.Interface
	Attempts  int
}

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" hint.
const maxSuggestDistance = 2

// Menu prompts the operator to pick interfaces by 1-based index or name.
//
// A Menu is not usable after a Select canceled by its context: the pending
// read still owns the input, so later calls fail with ErrCodeCanceled.
type Menu struct {
	Interfaces  []netif.Interface
	MaxAttempts int

	in        *bufio.Reader
	out       *console.Printer
	abandoned bool
}

// New returns a Menu reading answers from in and writing to out.
// maxAttempts below 1 falls back to the default bound.
func New(ifaces []netif.Interface, in io.Reader, out *console.Printer, maxAttempts int) *Menu {
	if maxAttempts < 1 {
		maxAttempts = defaults.MaxSelectionAttempts
	}
	return &Menu{
		Interfaces:  ifaces,
		MaxAttempts: maxAttempts,
		in:          bufio.NewReader(in),
		out:         out,
	}
}

// Display prints one "N: name address" row per interface.
func (m *Menu) Display() {
	for i, iface := range m.Interfaces {
		addr := iface.Address
		if addr == "" {
			addr = m.out.Sprint(console.StyleWarning, "(no IPv4 address)")
		}
		m.out.Printf(console.StylePlain, "%d: %s %s\n", i+1, iface.Name, addr)
	}
}

// Select prompts for the interface serving role. Invalid answers are
// reported and re-prompted until MaxAttempts is spent, which yields an
// OutOfAttempts result rather than an error. Errors are returned only when
// ctx is canceled or the input is closed.
func (m *Menu) Select(ctx context.Context, role Role) (Result, error) {
	res := Result{Role: role}

	m.Display()
	for res.Attempts < m.MaxAttempts {
		res.Attempts++
		m.out.Printf(console.StyleBold, "Select the row number for %s interface: ", role)

		line, err := m.readLine(ctx)
		if err != nil {
			return res, err
		}

		idx, iface, reason := m.parse(line)
		if reason == "" {
			res.Outcome = ValidSelection
			res.Index = idx
			res.Interface = iface
			slog.Debug("interface selected",
				slog.String("role", string(role)),
				slog.String("interface", iface.Name),
				slog.Int("attempts", res.Attempts))
			return res, nil
		}

		m.out.Warn("Selection was invalid (%s), try again or exit with Ctrl+C", reason)
		slog.Debug("invalid selection", slog.String("role", string(role)), slog.String("input", line), slog.String("reason", reason))
		if res.Attempts < m.MaxAttempts {
			m.Display()
		}
	}

	res.Outcome = OutOfAttempts
	return res, nil
}

// parse validates an answer and returns the 1-based index and interface.
// A non-empty reason means the answer was rejected.
func (m *Menu) parse(input string) (int, netif.Interface, string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, netif.Interface{}, "empty answer"
	}

	idx, err := strconv.Atoi(input)
	if err != nil {
		for i, iface := range m.Interfaces {
			if iface.Name == input {
				return m.check(i + 1)
			}
		}
		reason := fmt.Sprintf("%q is not a row number", input)
		if s := m.suggest(input); s != "" {
			reason += fmt.Sprintf(", did you mean %s?", s)
		}
		return 0, netif.Interface{}, reason
	}

	if idx < 1 || idx > len(m.Interfaces) {
		return 0, netif.Interface{}, fmt.Sprintf("choose a row between 1 and %d", len(m.Interfaces))
	}
	return m.check(idx)
}

func (m *Menu) check(idx int) (int, netif.Interface, string) {
	iface := m.Interfaces[idx-1]
	if !iface.HasAddress() {
		return 0, netif.Interface{}, fmt.Sprintf("%s has no IPv4 address", iface.Name)
	}
	return idx, iface, ""
}

// suggest returns the interface name closest to input, if close enough.
func (m *Menu) suggest(input string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, iface := range m.Interfaces {
		d := levenshtein.ComputeDistance(strings.ToLower(input), strings.ToLower(iface.Name))
		if d < bestDist {
			best, bestDist = iface.Name, d
		}
	}
	return best
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one answer, giving up when ctx is done.
func (m *Menu) readLine(ctx context.Context) (string, error) {
	if m.abandoned {
		return "", swerrors.New(swerrors.ErrCodeCanceled, "selection input was abandoned by an earlier canceled prompt")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ch := make(chan lineResult, 1)
	go func() {
		line, err := m.in.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		m.abandoned = true
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			if errors.Is(r.err, io.EOF) && r.line != "" {
				return r.line, nil
			}
			if errors.Is(r.err, io.EOF) {
				return "", swerrors.Wrap(swerrors.ErrCodeCanceled, "input closed before a selection was made", r.err)
			}
			return "", swerrors.Wrap(swerrors.ErrCodeInternal, "failed to read selection", r.err)
		}
		return r.line, nil
	}
}
