package purfectview

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Process is a child process attached to a pseudo-terminal, the usual
// remote end of a Terminal.
type Process struct {
	cmd *exec.Cmd
	pty *os.File
}

// StartProcess launches a command on a new pty with the given screen
// size. Args may be nil; dir, when non-empty, sets the working
// directory.
func StartProcess(name string, args []string, dir string, cols, rows int) (*Process, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("purfectview: start %s: %w", name, err)
	}
	return &Process{cmd: cmd, pty: f}, nil
}

// StartShell launches the user's shell ($SHELL, falling back to
// /bin/sh).
func StartShell(cols, rows int) (*Process, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return StartProcess(shell, nil, "", cols, rows)
}

// ExitCode returns the exit code after Wait, or -1 while running.
func (p *Process) ExitCode() int {
	if p.cmd.ProcessState == nil {
		return -1
	}
	return p.cmd.ProcessState.ExitCode()
}

// Read reads output from the process.
func (p *Process) Read(buf []byte) (int, error) {
	return p.pty.Read(buf)
}

// Write sends input to the process.
func (p *Process) Write(data []byte) (int, error) {
	return p.pty.Write(data)
}

// Resize updates the pty size and signals the child.
func (p *Process) Resize(cols, rows int) error {
	return pty.Setsize(p.pty, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Wait blocks until the process exits.
func (p *Process) Wait() error {
	return p.cmd.Wait()
}

// Close closes the pty and reaps the process.
func (p *Process) Close() error {
	err := p.pty.Close()
	if p.cmd.Process != nil {
		p.cmd.Process.Kill()
		p.cmd.Wait()
	}
	return err
}

// Attach wires a Process to a Terminal: process output feeds the
// engine and Terminal output is written back to the process. The
// returned func detaches; onExit, if non-nil, runs when the process
// output stream ends.
func Attach(t *Terminal, p *Process, onExit func()) func() {
	unsubscribe := t.OnOutput(func(data []byte) {
		p.Write(data)
	})

	done := make(chan struct{})
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := p.Read(buf)
			if n > 0 && !t.IsDisposed() {
				t.Feed(buf[:n])
			}
			if err != nil {
				break
			}
			select {
			case <-done:
				return
			default:
			}
		}
		if onExit != nil {
			onExit()
		}
	}()

	return func() {
		unsubscribe()
		close(done)
	}
}
