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
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/zintix-labs/minelab"
	"github.com/zintix-labs/minelab/demo"
	"github.com/zintix-labs/minelab/tui"
)

func main() {
	preset := flag.String("preset", "beginner", "preset name")
	seed := flag.Int64("seed", 0, "seed (<1 for entropy)")
	presets := flag.String("presets", "", "extra preset directory (yaml/json)")
	layout := flag.String("layout", "", "replay a layout code printed by a previous game")
	flag.Parse()

	lab, err := demo.NewLab("", *presets)
	if err != nil {
		log.Fatal(err)
	}
	var s *minelab.Session
	switch {
	case *layout != "":
		s, err = lab.ReplaySession(*layout)
	case *seed >= 1:
		s, err = lab.NewSession(*preset, *seed)
	default:
		s, err = lab.NewSessionAuto(*preset)
	}
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	err = tui.New(screen, s).Run()
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
	// 離開後印出 seed 與佈局碼；佈局碼可用 -layout 重玩同一盤。
	fmt.Fprintf(os.Stdout, "seed=%d\n", s.Seed())
	if code, lerr := s.Layout(); lerr == nil {
		fmt.Fprintf(os.Stdout, "layout=%s\n", code)
	}
}
