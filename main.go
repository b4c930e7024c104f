/*
 * tenbit - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/tenbit/internal/assembler"
	"github.com/rcornwell/tenbit/internal/config"
	"github.com/rcornwell/tenbit/internal/repl"
	logger "github.com/rcornwell/tenbit/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optPurgeAM := getopt.BoolLong("purge-am", 'o', "Delete the .am intermediate file even on success")
	optInteractive := getopt.BoolLong("interactive", 'i', "Start the interactive instruction encoder")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		printUsage()
		os.Exit(0)
	}

	cfg := config.Default()
	if *optConfig != "" {
		loaded, err := config.Load(*optConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *optPurgeAM {
		cfg.Assembler.KeepIntermediate = false
	}

	logPath := *optLogFile
	if logPath == "" {
		logPath = cfg.Log.File
	}
	var file *os.File
	if logPath != "" {
		file, _ = os.Create(logPath)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(logLevel(cfg.Log.Level))
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, false))
	slog.SetDefault(Logger)

	if *optInteractive {
		repl.Run()
		return
	}

	args := getopt.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	fmt.Printf("Assembler started. Processing %d file(s)...\n", len(args))

	overallSuccess := true
	for _, path := range args {
		ctx, err := assembler.New(path, cfg, os.Stdout, Logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			overallSuccess = false
			continue
		}

		ok, err := ctx.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			overallSuccess = false
			continue
		}
		if ok {
			fmt.Printf("File '%s' processed successfully.\n", path)
		} else {
			fmt.Printf("File '%s' processing failed.\n", path)
			overallSuccess = false
		}
	}

	fmt.Println("\n=== Assembly complete ===")
	if overallSuccess {
		fmt.Println("All files processed successfully.")
		os.Exit(0)
	}
	fmt.Println("Some files had errors. Check error messages above.")
	os.Exit(1)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printUsage() {
	fmt.Println("Usage: tenbit [options] <base1> [<base2> ...]")
	fmt.Println()
	fmt.Println("Description:")
	fmt.Println("  Assembles one or more assembly source files.")
	fmt.Println("  Input files should have .as extension (extension not included in argument).")
	fmt.Println()
	fmt.Println("Example:")
	fmt.Println("  tenbit test1 test2 test3")
	fmt.Println("  This will process test1.as, test2.as, and test3.as")
	fmt.Println()
	fmt.Println("Output Files:")
	fmt.Println("  For each input file 'filename':")
	fmt.Println("  - filename.am  : Macro-expanded intermediate file")
	fmt.Println("  - filename.ob  : Object file (machine code in base-4 letters)")
	fmt.Println("  - filename.ent : Entry points file (if .entry directives exist)")
	fmt.Println("  - filename.ext : External references file (if external symbols are referenced)")
	fmt.Println()
	getopt.Usage()
}
