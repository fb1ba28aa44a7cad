package selector

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/swnetcfg/pkg/console"
	swerrors "github.com/NVIDIA/swnetcfg/pkg/errors"
	"github.com/NVIDIA/swnetcfg/pkg/netif"
)

var testInterfaces = []netif.Interface{
	{Name: "eth0", Address: "10.0.0.5"},
	{Name: "eth1", Address: "10.0.1.9"},
	{Name: "ib0"},
}

func newMenu(input string, maxAttempts int) (*Menu, *bytes.Buffer) {
	var out bytes.Buffer
	return New(testInterfaces, strings.NewReader(input), console.New(&out, false), maxAttempts), &out
}

func TestMenu_Display(t *testing.T) {
	m, out := newMenu("", 1)
	m.Display()

	assert.Equal(t, "1: eth0 10.0.0.5\n2: eth1 10.0.1.9\n3: ib0 (no IPv4 address)\n", out.String())
}

func TestMenu_Select_Valid(t *testing.T) {
	m, _ := newMenu("1\n2\n", 3)
	ctx := context.Background()

	meta, err := m.Select(ctx, RoleMetadata)
	require.NoError(t, err)
	assert.Equal(t, ValidSelection, meta.Outcome)
	assert.Equal(t, 1, meta.Index)
	assert.Equal(t, "eth0", meta.Interface.Name)
	assert.Equal(t, 1, meta.Attempts)

	data, err := m.Select(ctx, RoleData)
	require.NoError(t, err)
	assert.Equal(t, ValidSelection, data.Outcome)
	assert.Equal(t, "eth1", data.Interface.Name)
	assert.Equal(t, RoleData, data.Role)
}

func TestMenu_Select_SameInterfaceForBothRoles(t *testing.T) {
	m, _ := newMenu("2\n2\n", 3)

	meta, err := m.Select(context.Background(), RoleMetadata)
	require.NoError(t, err)
	data, err := m.Select(context.Background(), RoleData)
	require.NoError(t, err)
	assert.Equal(t, meta.Interface, data.Interface)
}

func TestMenu_Select_RepromptsOnInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"non numeric", "abc\n1\n", "is not a row number"},
		{"zero", "0\n1\n", "choose a row between 1 and 3"},
		{"negative", "-1\n1\n", "choose a row between 1 and 3"},
		{"too large", "4\n1\n", "choose a row between 1 and 3"},
		{"empty", "\n1\n", "empty answer"},
		{"no address", "3\n1\n", "ib0 has no IPv4 address"},
		{"near miss name", "eht0\n1\n", "did you mean eth0?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, out := newMenu(tt.input, 5)

			res, err := m.Select(context.Background(), RoleMetadata)
			require.NoError(t, err)
			assert.Equal(t, ValidSelection, res.Outcome)
			assert.Equal(t, "eth0", res.Interface.Name)
			assert.Equal(t, 2, res.Attempts)
			assert.Contains(t, out.String(), tt.reason)
			assert.Contains(t, out.String(), "try again or exit with Ctrl+C")
			assert.Equal(t, 2, strings.Count(out.String(), "1: eth0 10.0.0.5"), "menu is shown again after an invalid answer")
		})
	}
}

func TestMenu_Select_ByName(t *testing.T) {
	m, _ := newMenu("eth1\n", 1)

	res, err := m.Select(context.Background(), RoleData)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Index)
	assert.Equal(t, "10.0.1.9", res.Interface.Address)
}

func TestMenu_Select_OutOfAttempts(t *testing.T) {
	m, _ := newMenu("x\ny\nz\n1\n", 3)

	res, err := m.Select(context.Background(), RoleMetadata)
	require.NoError(t, err)
	assert.Equal(t, OutOfAttempts, res.Outcome)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, "out-of-attempts", res.Outcome.String())
}

func TestMenu_Select_InputClosed(t *testing.T) {
	m, _ := newMenu("", 3)

	_, err := m.Select(context.Background(), RoleMetadata)
	require.Error(t, err)
	assert.Equal(t, swerrors.ErrCodeCanceled, swerrors.CodeOf(err))
	assert.ErrorIs(t, err, io.EOF)
}

func TestMenu_Select_LastLineWithoutNewline(t *testing.T) {
	m, _ := newMenu("2", 1)

	res, err := m.Select(context.Background(), RoleMetadata)
	require.NoError(t, err)
	assert.Equal(t, "eth1", res.Interface.Name)
}

func TestMenu_Select_ContextCanceled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	m := New(testInterfaces, pr, console.New(&out, false), 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Select(ctx, RoleMetadata)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMenu_Select_UnusableAfterCanceledRead(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	m := New(testInterfaces, pr, console.New(&out, false), 3)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Select(ctx, RoleMetadata)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = m.Select(context.Background(), RoleData)
	require.Error(t, err)
	assert.Equal(t, swerrors.ErrCodeCanceled, swerrors.CodeOf(err))
}

func TestNew_DefaultAttempts(t *testing.T) {
	m, _ := newMenu("", 0)
	assert.Equal(t, 5, m.MaxAttempts)
}
