// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// 開發用任務：go run ./scripts <task>
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

const (
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorReset  = "\033[0m"
)

func paint(color, msg string) { fmt.Printf("%s%s%s\n", color, msg, colorReset) }

// filter 回傳 false 代表略過該行。
type filter func(line string) bool

type task struct {
	desc  string
	clean bool // 先清 test cache
	args  []string
	keep  filter
}

var tasks = map[string]task{
	"test": {
		desc:  "all packages, only ok/FAIL lines",
		clean: true,
		args:  []string{"test", "./...", "-cover", "-count=1"},
		keep: func(l string) bool {
			return strings.HasPrefix(l, "ok") || strings.HasPrefix(l, "FAIL") ||
				strings.Contains(l, "build failed") || strings.Contains(l, "setup failed")
		},
	},
	"test-detail": {
		desc:  "verbose tests without [no test files] lines",
		clean: true,
		args:  []string{"test", "./...", "-v", "-count=1"},
		keep:  func(l string) bool { return !strings.Contains(l, "[no test files]") },
	},
	"race": {
		desc: "session / store / server tests under the race detector",
		args: []string{"test", "-race", "-count=1", ".", "./server/...", "./tui/..."},
	},
	"sim-smoke": {
		desc: "small deterministic expert simulation",
		args: []string{"run", "./cmd/sim", "-preset", "expert", "-boards", "2000", "-worker", "2", "-seed", "42"},
	},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	t, ok := tasks[os.Args[1]]
	if !ok {
		paint(colorYellow, "unknown task: "+os.Args[1])
		usage()
		os.Exit(1)
	}
	if err := run(t); err != nil {
		paint(colorRed, "\n"+os.Args[1]+" finished with errors: "+err.Error())
		os.Exit(1)
	}
}

func usage() {
	names := make([]string, 0, len(tasks))
	for n := range tasks {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Println("Usage: go run ./scripts <task>")
	for _, n := range names {
		fmt.Printf("  %-12s %s\n", n, tasks[n].desc)
	}
}

func run(t task) error {
	if t.clean {
		if err := exec.Command("go", "clean", "-testcache").Run(); err != nil {
			paint(colorRed, err.Error())
		}
	}
	cmd := exec.Command("go", t.args...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return err
	}
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		line := sc.Text()
		if t.keep != nil && !t.keep(line) {
			continue
		}
		switch {
		case strings.HasPrefix(line, "ok"):
			paint(colorGreen, line)
		case strings.HasPrefix(line, "FAIL"), strings.HasPrefix(line, "--- FAIL"):
			paint(colorRed, line)
		default:
			fmt.Println(line)
		}
	}
	return cmd.Wait()
}
