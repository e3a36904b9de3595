// Command willow drives a single VM through its tick loop interactively,
// for manual testing of the object tree and program pool without an
// embedding host.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"willow"
	"willow/builtin/array"
	"willow/builtin/dict"
)

func main() {
	dump := flag.Bool("dump", false, "print a YAML snapshot after every command")
	flag.Parse()

	vm := willow.NewVM()
	array.Register(vm.Pool)
	dict.Register(vm.Pool)
	vm.Launch()

	fmt.Println("willow> type 'help' for commands")
	stdin := bufio.NewScanner(os.Stdin)
	for vm.IsActive() {
		fmt.Print("willow> ")
		if !stdin.Scan() {
			break
		}
		run(vm, strings.TrimSpace(stdin.Text()), *dump)
	}
	fmt.Fprintln(os.Stdout, "application object destroyed; exiting")
}

func run(vm *willow.VM, line string, dump bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "help":
		fmt.Println("commands: tick, spawn <type>, kill, stats, dump, quit")
	case "tick":
		active := vm.Update()
		if !active {
			fmt.Println("root object destroyed")
		}
	case "spawn":
		if len(fields) < 2 {
			fmt.Println("usage: spawn <type>")
			return
		}
		h := vm.SpawnObject(vm.Objects.Root(), fields[1], nil, nil, nil)
		fmt.Printf("spawned handle %d\n", h)
	case "kill":
		vm.Kill()
	case "stats":
		vm.LogStats(os.Stdout)
	case "dump":
		dump = true
	case "quit":
		vm.Kill()
		vm.Update()
	default:
		fmt.Printf("unrecognized command %q\n", fields[0])
	}
	if dump {
		b, err := vm.Dump()
		if err != nil {
			vm.LogFault(os.Stderr, err)
			return
		}
		os.Stdout.Write(b)
	}
}
