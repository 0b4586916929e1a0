// Command dmgcore runs the core headless: load a cartridge (and
// optionally a boot ROM), step the CPU, and log whatever halts it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/thelolagemann/dmgcore/internal/apu"
	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/bus"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	ioregs "github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/worker"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/romfile"
)

func main() {
	romPath := flag.String("rom", "", "cartridge ROM file to load (.gb/.gbc, or .zip/.gz/.7z)")
	bootPath := flag.String("boot", "", "256-byte boot ROM file to load (optional; boot overlay is pre-disabled if omitted)")
	steps := flag.Uint64("steps", 0, "stop after this many instructions (0 runs until the core halts)")
	flag.Parse()

	if err := run(*romPath, *bootPath, *steps); err != nil {
		fmt.Fprintln(os.Stderr, "dmgcore:", err)
		os.Exit(1)
	}
}

func run(romPath, bootPath string, steps uint64) error {
	if romPath == "" {
		return fmt.Errorf("-rom is required")
	}

	logger := log.New()

	romData, err := romfile.Load(romPath)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	cart, err := cartridge.New(romData)
	if err != nil {
		return fmt.Errorf("parsing cartridge: %w", err)
	}
	logger.Infof("loaded cartridge %q (fingerprint %x)", cart.Header().Title, cart.Fingerprint())

	bootROM, err := loadBootROM(bootPath)
	if err != nil {
		return fmt.Errorf("loading boot rom: %w", err)
	}

	router := ioregs.NewRouter(ppu.NewRegisters(), apu.NewRegisters(), bootROM)
	b := bus.New(bootROM, cart, router, logger)
	c := cpu.New(b)
	w := worker.New(b, c, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if steps > 0 {
		go stopAfter(w, steps)
	}
	go drainSideChannels(w)

	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("run loop halted: %w", err)
	}
	return nil
}

// loadBootROM loads the named boot ROM file, or returns a zeroed,
// already-disabled ROM when path is empty so the bus serves cartridge
// bytes at $0000-$00FF from the very first fetch.
func loadBootROM(path string) (*boot.ROM, error) {
	if path == "" {
		r, err := boot.New(make([]byte, boot.Size))
		if err != nil {
			return nil, err
		}
		r.Disable()
		return r, nil
	}

	data, err := romfile.LoadBootROM(path)
	if err != nil {
		return nil, err
	}
	return boot.New(data)
}

// stopAfter watches the worker's published snapshots and sends a
// Shutdown once the requested number of steps has been observed.
func stopAfter(w *worker.Worker, steps uint64) {
	var n uint64
	for range w.Snapshots {
		n++
		if n >= steps {
			w.Commands <- worker.CommandShutdown
			return
		}
	}
}

// drainSideChannels logs lines published on the worker's log channel so
// the headless CLI surfaces BackendDied and any other diagnostic output.
func drainSideChannels(w *worker.Worker) {
	for line := range w.Logs {
		fmt.Println(line)
	}
}
