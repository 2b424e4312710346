package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nstego/internal/cli"
)

func main() {
	root := cli.RootCommand()

	var cpuProfile, memProfileDir string
	root.PersistentFlags().StringVar(&cpuProfile, "cpu-profile", "", "Dump CPU profile into the supplied file")
	root.PersistentFlags().StringVar(&memProfileDir, "mem-profile-dir", "", "Dump memory profiles into the supplied directory")

	var cpuProfTeardown, memProfTeardown func()
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if cpuProfile != "" {
			cpuProfTeardown = setupCPUProfiling(cpuProfile)
		}
		if memProfileDir != "" {
			cli.StartMemoryProfiler(memProfileDir)
			memProfTeardown = cli.StopMemoryProfiler
		}
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if cpuProfTeardown != nil {
			cpuProfTeardown()
		}
		if memProfTeardown != nil {
			memProfTeardown()
		}
	}

	interrupt := make(chan os.Signal, 2)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		if cpuProfTeardown != nil {
			cpuProfTeardown()
		}
		if memProfTeardown != nil {
			memProfTeardown()
		}
		os.Exit(0)
	}()

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.SetFlags(0)
		os.Exit(1)
	}
}

func setupCPUProfiling(path string) func() {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	cli.StartCPUProfiler(f)
	return func() {
		cli.StopCPUProfiler()
		f.Close()
	}
}
