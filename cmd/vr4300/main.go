// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/ezrec/vr4300/cart"
	"github.com/ezrec/vr4300/config"
	"github.com/ezrec/vr4300/host"
	"github.com/ezrec/vr4300/machine"
	"github.com/ezrec/vr4300/mips"
)

// breakpoints collects repeated -b flags, as ADDRESS[:CONDITION] or
// MNEMONIC[:CONDITION].
type breakpoints []config.Breakpoint

func (bps *breakpoints) String() string {
	return fmt.Sprint(len(*bps))
}

func (bps *breakpoints) Set(value string) error {
	where, cond, _ := strings.Cut(value, ":")

	bp := config.Breakpoint{Condition: strings.TrimSpace(cond)}
	address, err := strconv.ParseUint(where, 0, 64)
	if err == nil {
		bp.Address = address
	} else {
		bp.Instruction = where
	}

	*bps = append(*bps, bp)
	return nil
}

func main() {
	var configFile string
	var rom string
	var pif string
	var bin string
	var at uint64
	var pc uint64
	var steps uint64
	var verbose bool
	var trace string
	var bps breakpoints

	flag.StringVar(&configFile, "c", "", "YAML machine configuration")
	flag.StringVar(&rom, "rom", "", "Cartridge image to mount")
	flag.StringVar(&pif, "pif", "", "PIF boot ROM image")
	flag.StringVar(&bin, "bin", "", "Raw big-endian binary to load")
	flag.Uint64Var(&at, "at", machine.KSEG0+0x1000, "Load address for -bin")
	flag.Uint64Var(&pc, "pc", 0, "Start address, if non-zero")
	flag.Uint64Var(&steps, "n", 0, "Stop after this many steps, if non-zero")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&trace, "trace", "", "Instruction trace output ('-' for stdout)")
	flag.Var(&bps, "b", "Breakpoint, ADDRESS[:CONDITION] or MNEMONIC[:CONDITION]")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := config.Default()
	if len(configFile) != 0 {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	cfg.Verbose = cfg.Verbose || verbose
	cfg.Breakpoints = append(cfg.Breakpoints, bps...)
	if len(trace) != 0 {
		cfg.Trace = true
		cfg.TraceFile = trace
	}
	if len(pif) != 0 {
		cfg.Boot.PifRom = pif
	}

	logger := logrus.New()
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	m, err := machine.New(cfg, logger)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if len(rom) != 0 {
		inf, err := os.Open(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		c, err := cart.Load(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		err = m.Mount(c)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	if len(cfg.Boot.PifRom) != 0 {
		data, err := os.ReadFile(cfg.Boot.PifRom)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Boot.PifRom, err)
		}
		err = m.PIF.LoadRom(data)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Boot.PifRom, err)
		}
	}

	traceToStdout := false
	if cfg.Trace {
		var w io.Writer = os.Stdout
		if len(cfg.TraceFile) != 0 && cfg.TraceFile != "-" {
			ouf, err := os.Create(cfg.TraceFile)
			if err != nil {
				log.Fatalf("%v: %v", cfg.TraceFile, err)
			}
			defer ouf.Close()
			w = ouf
		} else {
			traceToStdout = true
		}
		m.Debugger.Trace = bufio.NewWriter(w)
	}

	switch {
	case len(bin) != 0:
		data, err := os.ReadFile(bin)
		if err != nil {
			log.Fatalf("%v: %v", bin, err)
		}
		state := machine.DefaultBoot()
		state.PC = at
		state.Memory = []machine.Block{{Address: at, Data: data}}
		err = m.ApplyBoot(state)
		if err != nil {
			log.Fatalf("%v: %v", bin, err)
		}
	case m.Cartridge != nil && !cfg.Boot.Cold:
		err = m.HLEBoot()
	default:
		err = m.ColdBoot()
	}
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if pc != 0 {
		m.Engine.SetPC(pc)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := host.NewRunner(m, m.Debugger, logger)
	runner.Verbose = cfg.Verbose
	runner.Limit = steps

	var bar *progressbar.ProgressBar
	if steps != 0 && !traceToStdout && term.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.Default(int64(steps), "running")
		runner.OnTick = func(ticks uint64) {
			if ticks%1024 == 0 || ticks == steps {
				bar.Set64(int64(ticks))
			}
		}
	}

	breaks := make(chan struct{}, 1)
	runner.OnBreak = func() {
		select {
		case breaks <- struct{}{}:
		default:
		}
	}

	err = runner.Start(ctx)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	waited := make(chan error, 1)
	go func() {
		waited <- runner.Wait()
	}()

	mon := &monitor{
		machine: m,
		runner:  runner,
		input:   bufio.NewScanner(os.Stdin),
		prompt:  term.IsTerminal(int(os.Stdin.Fd())),
	}

	for {
		select {
		case err = <-waited:
			if bar != nil {
				bar.Finish()
			}
			if err != nil && !errors.Is(err, host.ErrInterrupted) {
				log.Fatalf("%v: %v", os.Args[0], err)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		case <-breaks:
			mon.stopped()
		}
	}
}

// monitor is the line-oriented prompt shown while the machine is stopped.
type monitor struct {
	machine *machine.Machine
	runner  *host.Runner
	input   *bufio.Scanner
	prompt  bool
}

func (mon *monitor) stopped() {
	m := mon.machine

	fmt.Fprintf(os.Stderr, "break: %v\n", m.Debugger.Reason())
	mon.where()

	for {
		if mon.prompt {
			fmt.Fprint(os.Stderr, "(s)tep (c)ontinue (r)egs (q)uit> ")
		}

		if !mon.input.Scan() {
			mon.runner.Interrupt()
			return
		}

		switch strings.TrimSpace(mon.input.Text()) {
		case "s", "step":
			m.Debugger.StepNext()
			return
		case "c", "continue":
			m.Debugger.Resume()
			return
		case "r", "regs":
			mon.registers()
		case "q", "quit":
			mon.runner.Interrupt()
			return
		case "":
		default:
			fmt.Fprintln(os.Stderr, "?")
		}
	}
}

func (mon *monitor) where() {
	m := mon.machine

	inst, err := m.Instruction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%08X: %v\n", uint32(m.PC()), err)
		return
	}
	fmt.Fprintf(os.Stderr, "%08X: %v\n", uint32(m.PC()), inst)
}

func (mon *monitor) registers() {
	e := mon.machine.Engine

	for index := range e.GPR {
		fmt.Fprintf(os.Stderr, "%4v %016x", mips.GprName(index), e.GPR[index])
		if index%4 == 3 {
			fmt.Fprintln(os.Stderr)
		} else {
			fmt.Fprint(os.Stderr, " ")
		}
	}
	fmt.Fprintf(os.Stderr, "  pc %016x   hi %016x   lo %016x\n", e.PC, e.Hi, e.Lo)
	fmt.Fprintf(os.Stderr, "ticks %d\n", mon.runner.Ticks())
}
