// Package worker runs the cooperative single-goroutine fetch-decode-execute
// loop and exposes it to a front end over four unidirectional, buffered
// channels. The loop drains commands and publishes snapshots and log lines
// with select-with-default, so it never blocks on a channel; a send to a
// full channel is dropped.
package worker

import (
	"context"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/bus"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Command is a message sent on the inbound command channel.
type Command int

const (
	// CommandShutdown terminates the worker at the next loop iteration.
	CommandShutdown Command = iota
)

// channelDepth is the buffer size of the Commands, Logs and Snapshots
// channels (Frames is buffered to 4). None of the channels is unbounded:
// the worker try-sends and drops a message when the channel is full.
const channelDepth = 256

// Worker owns the bus, the CPU, and the single goroutine that steps
// them. It is not safe to call Run from more than one goroutine at a
// time, nor to touch Bus or CPU while Run is executing.
type Worker struct {
	Bus *bus.Bus
	CPU *cpu.CPU
	log log.Logger

	// Commands is the inbound command queue.
	Commands chan Command
	// Logs carries rendered log lines, including the error taxonomy's
	// single-line renderings and the BackendDied event when the loop
	// halts.
	Logs chan string
	// Snapshots carries a cloned CPU.Snapshot after every step.
	Snapshots chan cpu.Snapshot
	// Frames carries raw RGB8 framebuffer bytes. Nothing in this core
	// ever produces a frame (the pixel pipeline is out of scope), but
	// the channel exists so a front end can select on it unconditionally.
	Frames chan []byte
}

// New returns a Worker wired to the given bus and CPU, with its four
// channels allocated and ready to run.
func New(b *bus.Bus, c *cpu.CPU, logger log.Logger) *Worker {
	return &Worker{
		Bus:       b,
		CPU:       c,
		log:       logger,
		Commands:  make(chan Command, channelDepth),
		Logs:      make(chan string, channelDepth),
		Snapshots: make(chan cpu.Snapshot, channelDepth),
		Frames:    make(chan []byte, 4),
	}
}

// Run executes the fetch-decode-execute loop until a Shutdown command is
// received, ctx is cancelled, or a step returns an error. On error the
// loop logs the failure, publishes one final snapshot, and returns the
// error without recovering; header validation and construction failures
// are the caller's responsibility, not the worker's.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-w.Commands:
			if cmd == CommandShutdown {
				return nil
			}
		default:
		}

		_, err := w.CPU.Step()
		if err != nil {
			w.log.Errorf("run loop halted: %v", err)
			w.trySendLog(fmt.Sprintf("BackendDied: %v", err))
			w.trySendSnapshot(w.CPU.Snapshot())
			return err
		}

		w.trySendSnapshot(w.CPU.Snapshot())
	}
}

func (w *Worker) trySendLog(line string) {
	select {
	case w.Logs <- line:
	default:
		w.log.Debugf("log channel full, dropping: %s", line)
	}
}

func (w *Worker) trySendSnapshot(s cpu.Snapshot) {
	select {
	case w.Snapshots <- s:
	default:
	}
}
