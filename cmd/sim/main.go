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

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/zintix-labs/minelab/demo"
	"github.com/zintix-labs/minelab/sdk/core"
	"github.com/zintix-labs/minelab/sdk/perf"
	"github.com/zintix-labs/minelab/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type config struct {
	preset  string
	boards  int
	worker  int
	seed    int64
	out     string
	pprof   string
	presets string
	prng    string
}

func (c *config) valid() {
	if c.boards < 1 {
		log.Fatal("boards must be at least 1")
	}
	if c.worker < 1 {
		log.Fatal("worker must be at least 1")
	}
	if _, ok := stats.RenderByName(c.out); !ok {
		log.Fatalf("unknown output %q (want table|json|yaml)", c.out)
	}
	if err := perf.ValidMode(c.pprof); err != nil {
		log.Fatal(err)
	}
	if c.seed < 1 {
		seed, err := core.EntropySeed()
		if err != nil {
			log.Fatal(err)
		}
		c.seed = seed
	}
}

func main() {
	cfg := &config{}
	flag.StringVar(&cfg.preset, "preset", "expert", "preset name")
	flag.IntVar(&cfg.boards, "boards", 100000, "boards to generate")
	flag.IntVar(&cfg.worker, "worker", 4, "worker goroutines")
	flag.Int64Var(&cfg.seed, "seed", 0, "seed (<1 for entropy)")
	flag.StringVar(&cfg.out, "out", "table", "output: table|json|yaml")
	flag.StringVar(&cfg.pprof, "p", "", "pprof mode: cpu|heap|allocs")
	flag.StringVar(&cfg.presets, "presets", "", "extra preset directory (yaml/json)")
	flag.StringVar(&cfg.prng, "prng", "pcg64", "prng: pcg64|pcg32")
	flag.Parse()
	cfg.valid()

	lab, err := demo.NewLab(cfg.prng, cfg.presets)
	if err != nil {
		log.Fatal(err)
	}
	sim, err := lab.NewSimulator(cfg.preset, cfg.seed)
	if err != nil {
		log.Fatal(err)
	}

	// json/yaml 時標頭改寫到 stderr，stdout 只留報表。
	p := message.NewPrinter(language.English)
	hdr := os.Stdout
	if cfg.out != "table" {
		hdr = os.Stderr
	}
	p.Fprintf(hdr, "\033[32mminelab sim  preset=%s boards=%d worker=%d seed=%d\033[0m\n",
		cfg.preset, cfg.boards, cfg.worker, cfg.seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		rep  *stats.Report
		used time.Duration
		serr error
	)
	err = perf.RunPProf(func() {
		rep, used, serr = sim.Sim(ctx, cfg.boards, cfg.worker, true)
	}, cfg.pprof)
	if err != nil {
		log.Fatal(err)
	}
	if serr != nil {
		log.Fatal(serr)
	}

	if cfg.out == "table" {
		rep.StdOut(used)
		return
	}
	render, _ := stats.RenderByName(cfg.out)
	if err := rep.WriteWith(os.Stdout, render); err != nil {
		log.Fatal(err)
	}
}
