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
	"flag"
	"log"
	"time"

	"github.com/zintix-labs/minelab/demo"
	"github.com/zintix-labs/minelab/server"
	"github.com/zintix-labs/minelab/server/logger"
	"github.com/zintix-labs/minelab/server/svrcfg"
)

type config struct {
	addr        string
	logMode     string
	maxSessions int
	ttl         time.Duration
	presets     string
	prng        string
}

func main() {
	cfg := loadConfigFromFlags()
	mode, err := logger.ParseMode(cfg.logMode)
	if err != nil {
		log.Fatal(err)
	}
	lab, err := demo.NewLab(cfg.prng, cfg.presets)
	if err != nil {
		log.Fatal(err)
	}

	lg, ah := logger.NewAsync(4096, mode)
	sc := &svrcfg.SvrCfg{
		Log:         lg,
		Lab:         lab,
		Addr:        cfg.addr,
		MaxSessions: cfg.maxSessions,
		TTL:         cfg.ttl,
	}
	err = server.Run(sc)
	ah.Close()
	if err != nil {
		log.Fatal(err)
	}
}

func loadConfigFromFlags() *config {
	cfg := &config{}
	flag.StringVar(&cfg.addr, "addr", svrcfg.DefaultAddr, "listen address")
	flag.StringVar(&cfg.logMode, "log-mode", "dev", "log mode: dev|prod|silence")
	flag.IntVar(&cfg.maxSessions, "max-sessions", svrcfg.DefaultMaxSessions, "max live sessions")
	flag.DurationVar(&cfg.ttl, "ttl", svrcfg.DefaultTTL, "idle session ttl")
	flag.StringVar(&cfg.presets, "presets", "", "extra preset directory (yaml/json)")
	flag.StringVar(&cfg.prng, "prng", "pcg64", "prng: pcg64|pcg32")
	flag.Parse()
	return cfg
}
