// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/ezrec/lr35902/bus"
	"github.com/ezrec/lr35902/cpu"
	"github.com/ezrec/lr35902/emulator"
)

func parseAddr(name string, value string) uint16 {
	addr, err := strconv.ParseUint(value, 0, 16)
	if err != nil {
		log.Fatalf("-%v: %v", name, err)
	}
	return uint16(addr)
}

func main() {
	var compile string
	var image string
	var org string
	var pc string
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&image, "i", "", "Binary image to load (raw, .gz, .zip, .7z)")
	flag.StringVar(&org, "org", fmt.Sprintf("%#x", emulator.ENTRY), "Image load address")
	flag.StringVar(&pc, "pc", "", "Start address override")
	flag.IntVar(&limit, "n", 0, "Maximum instructions to execute (0 = unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Origin = parseAddr("org", org)

	if len(image) != 0 {
		data, err := bus.LoadImage(image)
		if err != nil {
			log.Fatal(err)
		}
		emu.Image = data
	}

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if len(pc) != 0 {
		emu.Cpu.PC = parseAddr("pc", pc)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticks, err := emu.Run(ctx, limit)

	fmt.Print(emu.Cpu.String())
	fmt.Printf("ticks: %v\n", ticks)
	fmt.Printf("  ram: %016x\n", emu.Ram.Checksum())

	if err != nil {
		log.Fatal(err)
	}
}
