//go:build ignore

// build.go - staffgap build script
// Usage: go run build.go [-target=TARGET] [-v]
// Targets: all, web, headcount, test, clean

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const contractsPkg = "staffgap/pkg/contracts"

var (
	distDir = "dist"

	// key = directory under cmd/, value = output binary name
	executables = map[string]string{
		"web":       "staffgap",
		"headcount": "headcount",
	}

	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
)

func main() {
	target := flag.String("target", "all", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	fmt.Println(colorCyan + "=== staffgap build ===" + colorReset)
	start := time.Now()

	var err error
	switch *target {
	case "all":
		for _, name := range []string{"web", "headcount"} {
			if err = buildExecutable(name, *verbose); err != nil {
				break
			}
		}
	case "web", "headcount":
		err = buildExecutable(*target, *verbose)
	case "test":
		err = runTests(*verbose)
	case "clean":
		err = os.RemoveAll(distDir)
	default:
		err = fmt.Errorf("unknown target %q (all, web, headcount, test, clean)", *target)
	}

	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("%s finished in %s", *target, time.Since(start).Round(time.Millisecond)))
}

func buildExecutable(name string, verbose bool) error {
	printInfo(fmt.Sprintf("Building %s...", name))

	output := filepath.Join(distDir, executables[name])
	ldflags := fmt.Sprintf("-s -w -X %s.BuildTime=%s -X %s.GitCommit=%s",
		contractsPkg, time.Now().UTC().Format(time.RFC3339),
		contractsPkg, gitCommit())

	args := []string{"build", "-ldflags", ldflags, "-o", output, "./cmd/" + name}
	if verbose {
		fmt.Printf("go %s\n", strings.Join(args, " "))
	}
	if err := goCommand(verbose, args...); err != nil {
		return fmt.Errorf("failed to build %s: %w", name, err)
	}

	if info, err := os.Stat(output); err == nil {
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", output, float64(info.Size())/1024/1024))
	}
	return nil
}

func runTests(verbose bool) error {
	printInfo("Running Go tests...")
	args := []string{"test", "-race"}
	if verbose {
		args = append(args, "-v")
	}
	return goCommand(true, append(args, "./...")...)
}

func goCommand(stream bool, args ...string) error {
	cmd := exec.Command("go", args...)
	if stream {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

func gitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

func printInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorBlue, colorReset, msg)
}

func printSuccess(msg string) {
	fmt.Printf("%s[SUCCESS]%s %s\n", colorGreen, colorReset, msg)
}

func printError(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", colorRed, colorReset, msg)
}
