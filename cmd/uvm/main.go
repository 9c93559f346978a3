// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/uvm/config"
	"github.com/ezrec/uvm/cpu"
	"github.com/ezrec/uvm/emulator"
	"github.com/ezrec/uvm/io"
	"github.com/ezrec/uvm/translate"
)

// defines collects -D NAME=VALUE arguments.
type defines map[string]string

func (d defines) String() string {
	var list []string
	for _, key := range slices.Sorted(maps.Keys(d)) {
		list = append(list, key+"="+d[key])
	}
	return strings.Join(list, ",")
}

func (d defines) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok {
		val = "1"
	}
	d[key] = val
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage:\n")
	fmt.Fprintf(os.Stderr, "  %v asm [-v] [-D NAME=VALUE] <listing.csv> <program.bin>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %v run [-v] [-c uvm.toml] [-strict] [-f json|toml|cbor] <program.bin> <dump> <start> <end>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %v dis <program.bin>\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "asm":
		doAssemble(args)
	case "run":
		doRun(args)
	case "dis":
		doDisassemble(args)
	default:
		usage()
		log.Fatalf("%v: Unknown command: %v", os.Args[0], cmd)
	}
}

// newFlagSet creates the flags shared by all commands.
func newFlagSet(name string, lang *string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ExitOnError)
	// Applies to every message, sentinel errors included.
	flags.StringVar(lang, "lang", "", "Message language (BCP 47)")
	return flags
}

func setLanguage(lang string) {
	if len(lang) == 0 {
		return
	}
	err := translate.SetLanguage(lang)
	if err != nil {
		log.Fatalf("%v: %v", lang, err)
	}
}

func doAssemble(args []string) {
	var lang string
	var verbose bool
	predefine := defines{}

	flags := newFlagSet("asm", &lang)
	flags.BoolVar(&verbose, "v", false, "Print instruction fields and bytecode")
	flags.Var(predefine, "D", "Predefine NAME=VALUE for $(...) expressions")
	flags.Parse(args)
	setLanguage(lang)

	if flags.NArg() != 2 {
		log.Fatalf("%v: asm: expected <listing.csv> <program.bin>, got %v", os.Args[0], flags.Args())
	}
	input, output := flags.Arg(0), flags.Arg(1)

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{}
	for key, value := range predefine {
		asm.Predefine(key, value)
	}
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	rom := &io.Rom{}
	rom.Data, err = prog.Binary()
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	if verbose {
		for _, stmt := range prog.Statements {
			fmt.Printf("%4d: %-9v %v\n", stmt.LineNo, stmt.Code, stmt.Code.Fields())
		}
		var hex []string
		for _, b := range rom.Data {
			hex = append(hex, fmt.Sprintf("0x%02X", b))
		}
		fmt.Println(strings.Join(hex, " "))
	}

	ouf, err := os.Create(output)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
	defer ouf.Close()

	err = rom.Marshal(ouf)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	fmt.Printf("Assembled %v -> %v\n", input, output)
	fmt.Printf("Instructions: %d\n", len(prog.Statements))
	fmt.Printf("Binary size: %d bytes\n", len(rom.Data))
}

func doRun(args []string) {
	var lang string
	var verbose bool
	var configFile string
	var strict bool
	var format string

	flags := newFlagSet("run", &lang)
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.StringVar(&configFile, "c", "", "uvm.toml configuration file")
	flags.BoolVar(&strict, "strict", false, "Halt on out-of-range memory access")
	flags.StringVar(&format, "f", "", "Dump format: json, toml or cbor (default: from dump file name)")
	flags.Parse(args)
	setLanguage(lang)

	if flags.NArg() != 4 {
		log.Fatalf("%v: run: expected <program.bin> <dump> <start> <end>, got %v", os.Args[0], flags.Args())
	}
	input, output := flags.Arg(0), flags.Arg(1)

	start, err := strconv.Atoi(flags.Arg(2))
	if err != nil {
		log.Fatalf("%v: %v", flags.Arg(2), err)
	}
	end, err := strconv.Atoi(flags.Arg(3))
	if err != nil {
		log.Fatalf("%v: %v", flags.Arg(3), err)
	}

	conf := config.Default()
	if len(configFile) != 0 {
		conf, err = config.Load(configFile)
		if err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
	}
	if len(format) != 0 {
		conf.Dump.Format = format
		err = conf.Validate()
		if err != nil {
			log.Fatalf("%v: %v", format, err)
		}
	}

	machine := conf.Cpu()
	if strict {
		machine.Policy = cpu.MEMORY_STRICT
	}

	emu := emulator.NewEmulator(machine)
	emu.Verbose = verbose

	// Reject a bad dump range before executing anything.
	err = emu.CheckRange(start, end)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	err = emu.Rom.Unmarshal(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	emu.Reset()
	runErr := emu.Run()
	if verbose {
		log.Printf("%v: %d instructions\n%v", input, emu.Cpu.Ticks, emu.Cpu.String())
	}

	dump, err := emu.Dump(start, end)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	var buf bytes.Buffer
	err = dump.Marshal(&buf, conf.DumpFormat(output))
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
	err = os.WriteFile(output, buf.Bytes(), 0o644)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if runErr != nil {
		log.Fatalf("%v: %v", input, runErr)
	}
}

func doDisassemble(args []string) {
	var lang string

	flags := newFlagSet("dis", &lang)
	flags.Parse(args)
	setLanguage(lang)

	if flags.NArg() != 1 {
		log.Fatalf("%v: dis: expected <program.bin>, got %v", os.Args[0], flags.Args())
	}
	input := flags.Arg(0)

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()

	rom := &io.Rom{}
	err = rom.Unmarshal(inf)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	prog, err := cpu.Disassemble(rom.Words())
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	out := csv.NewWriter(os.Stdout)
	for _, stmt := range prog.Statements {
		record := []string{stmt.Code.Op.String()}
		if stmt.Code.Op.Width() > 0 {
			record = append(record, strconv.FormatUint(uint64(stmt.Code.Operand), 10))
		}
		out.Write(record)
	}
	out.Flush()

	if rom.Tail() != 0 {
		log.Printf("%v: %d trailing bytes ignored", input, rom.Tail())
	}
}
