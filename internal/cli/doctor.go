package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: storage reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("FAIL  storage reachable\n      %v\n", err)
		hasError = true
	} else if _, err := ctx.Store.ReadSnapshot(); err != nil {
		fmt.Printf("FAIL  storage readable\n      %v\n", err)
		hasError = true
	} else {
		fmt.Println("OK    storage reachable")
	}

	// Check 2: no other stacker process. The store has a single writer;
	// two processes sharing the file can clobber each other's snapshots.
	if others, err := otherStackerProcesses(); err != nil {
		fmt.Printf("WARN  process check unavailable: %v\n", err)
	} else if len(others) > 0 {
		fmt.Printf("WARN  another stacker process is running (pid %v); concurrent use of the same store is unsupported\n", others)
	} else {
		fmt.Println("OK    no other stacker process")
	}

	// Check 3: store directory writable
	dir := filepath.Dir(ctx.Store.Path())
	probe := filepath.Join(dir, ".stacker-doctor")
	if err := os.WriteFile(probe, []byte("ok"), 0600); err != nil {
		fmt.Printf("FAIL  store directory writable\n      %v\n", err)
		hasError = true
	} else {
		os.Remove(probe)
		fmt.Println("OK    store directory writable")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed")
	return nil
}

func otherStackerProcesses() ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, err
	}
	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == "stacker" {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
