// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/specialistvlad/relaxflow/internal/launchpad"
	"github.com/specialistvlad/relaxflow/internal/structure"
	"github.com/stretchr/testify/require"
)

const alPOSCAR = `Al1
1.0
   2.4746024899999998    0.0000000000000000    1.4287118000000000
   0.8248675000000000    2.3330863100000001    1.4287118000000000
   0.0000000000000000    0.0000000000000000    2.8574236000000000
Al
1
direct
   0.0000000000000000    0.0000000000000000    0.0000000000000000 Al
`

// safeBuffer is a thread-safe buffer for capturing log output in tests.
type safeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// fakeProvider serves a fixed structure and records the ids asked for.
type fakeProvider struct {
	s     *structure.Structure
	err   error
	calls [][]string
}

func (p *fakeProvider) Structures(_ context.Context, ids []string) ([]*structure.Structure, error) {
	p.calls = append(p.calls, ids)
	if p.err != nil {
		return nil, p.err
	}
	return []*structure.Structure{p.s}, nil
}

// recordingOpener hands out one in-memory launchpad and counts the opens.
type recordingOpener struct {
	lp      *launchpad.Memory
	calls   int
	configs []launchpad.Config
}

func (o *recordingOpener) open(_ context.Context, cfg launchpad.Config) (launchpad.LaunchPad, error) {
	o.calls++
	o.configs = append(o.configs, cfg)
	return o.lp, nil
}

func aluminium(t *testing.T) *structure.Structure {
	t.Helper()
	s, err := structure.ParsePOSCAR(strings.NewReader(alPOSCAR))
	require.NoError(t, err)
	return s
}

// memoryLaunchpadFile writes a launchpad file selecting the memory backend.
func memoryLaunchpadFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), launchpad.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("backend: memory\n"), 0o600))
	return path
}

// setupAppTest builds an App with debug logging into a buffer.
func setupAppTest(t *testing.T, cfg Config, opts ...Option) (*App, *safeBuffer) {
	t.Helper()

	full, err := NewConfig(cfg)
	require.NoError(t, err)
	full.LogLevel = "debug"

	logBuffer := &safeBuffer{}
	testApp := NewApp(logBuffer, full, opts...)

	t.Cleanup(func() {
		if os.Getenv("RELAXFLOW_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return testApp, logBuffer
}
