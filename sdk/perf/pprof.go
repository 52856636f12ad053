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

// Package perf 以 runtime/pprof 包住一段執行，輸出到 build/profiling/。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/minelab/errs"
)

const pprofDir = "build/profiling"

// Modes 可用的 profiling 模式；空字串代表不開啟。
var Modes = []string{"", "cpu", "heap", "allocs"}

// ValidMode 檢查模式名稱。
func ValidMode(mode string) error {
	for _, m := range Modes {
		if m == mode {
			return nil
		}
	}
	return errs.Warnf("unknown pprof mode %q (want cpu|heap|allocs)", mode)
}

// RunPProf 依 mode 執行 exe 並寫出對應 profile。未知模式直接回錯，不執行 exe。
func RunPProf(exe func(), mode string) error {
	if err := ValidMode(mode); err != nil {
		return err
	}
	switch mode {
	case "cpu":
		return PProfCPU(exe)
	case "heap":
		return PProfHeap(exe)
	case "allocs":
		return PProfAllocs(exe)
	default:
		exe()
		return nil
	}
}

func create(name string) (*os.File, error) {
	if err := os.MkdirAll(pprofDir, 0o755); err != nil {
		return nil, errs.Wrap(err, "create pprof dir")
	}
	f, err := os.Create(filepath.Join(pprofDir, name))
	if err != nil {
		return nil, errs.Wrap(err, "create "+name)
	}
	return f, nil
}

// PProfCPU 輸出 cpu.pprof，也可當作 PGO 的輸入。
func PProfCPU(exe func()) error {
	f, err := create("cpu.pprof")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "start cpu profile")
	}
	defer pprof.StopCPUProfile()
	exe()
	return nil
}

// PProfHeap exe 結束後 GC 一次再寫 in-use heap 快照。
func PProfHeap(exe func()) error {
	exe()
	runtime.GC()
	f, err := create("heap.pprof")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errs.Wrap(err, "write heap profile")
	}
	return nil
}

// PProfAllocs exe 結束後寫累積配置（搭配 -alloc_space / -alloc_objects 查看）。
func PProfAllocs(exe func()) error {
	exe()
	f, err := create("allocs.pprof")
	if err != nil {
		return err
	}
	defer f.Close()
	if prof := pprof.Lookup("allocs"); prof != nil {
		if err := prof.WriteTo(f, 0); err != nil {
			return errs.Wrap(err, "write allocs profile")
		}
	}
	return nil
}
