// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: proc/proc.go
// Summary: Subprocess host backing `:!cmd` and `:shell` (spec.md §5, §6
// and SPEC_FULL.md's process-boundary supplement): runs a command,
// delivers SIGINT to it, and for `:shell` drops to an interactive
// pty-backed subshell. Grounded on apps/texelterm/term.go's
// pty.StartWithSize/pty.Setsize usage.
package proc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/creack/pty"
)

// Filter runs cmd with input piped to its stdin and returns its combined
// stdout, for `:!cmd` filtering a line/range of the buffer through an
// external program. SIGINT delivered to vied while Filter is running is
// forwarded to cmd's process rather than killing the editor, per
// spec.md §5's "SIGINT is delivered to the child of any spawned
// subprocess".
func Filter(shell string, cmd string, input string) (string, error) {
	c := exec.Command(shell, "-c", cmd)
	c.Stdin = strings.NewReader(input)
	var out bytes.Buffer
	var stderr bytes.Buffer
	c.Stdout = &out
	c.Stderr = &stderr

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	defer signal.Stop(sigCh)

	if err := c.Start(); err != nil {
		return "", fmt.Errorf("proc: start %q: %w", cmd, err)
	}

	done := make(chan error, 1)
	go func() { done <- c.Wait() }()

	for {
		select {
		case <-sigCh:
			if c.Process != nil {
				c.Process.Signal(syscall.SIGINT)
			}
		case err := <-done:
			if err != nil {
				return out.String(), fmt.Errorf("proc: %q: %w: %s", cmd, err, stderr.String())
			}
			return out.String(), nil
		}
	}
}

// Shell drops the caller into an interactive pty-backed subshell, sized
// to (rows, cols), connecting it to the process's own stdio until the
// shell exits. Callers (the editor package) are responsible for the
// terminal teardown/restore sequence around this call — the same one
// SIGTSTP uses — since Shell itself only owns the subprocess's pty, not
// vied's own screen.
func Shell(shellPath string, rows, cols int) error {
	c := exec.Command(shellPath)
	ptmx, err := pty.StartWithSize(c, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return fmt.Errorf("proc: start shell: %w", err)
	}
	defer ptmx.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGWINCH)
	defer signal.Stop(sigCh)

	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGINT:
				if c.Process != nil {
					c.Process.Signal(syscall.SIGINT)
				}
			case syscall.SIGWINCH:
				pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
			}
		}
	}()

	go io.Copy(ptmx, os.Stdin)
	go io.Copy(os.Stdout, ptmx)

	return c.Wait()
}
