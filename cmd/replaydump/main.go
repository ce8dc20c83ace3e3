package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"tenhou-lite/mahjong"
	"tenhou-lite/replay"
	"tenhou-lite/tenhou"
)

// replaydump 把 mjlog 日志走一遍状态机，打印事件流和终局牌桌。
func main() {
	verbose := flag.Bool("v", false, "print every event")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: replaydump [-v] <mjlog file>\n")
		os.Exit(2)
	}

	tape, err := replay.LoadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("[ReplayDump] Failed to load tape: %v", err)
	}
	log.Printf("[ReplayDump] Loaded %d messages", tape.Len())

	stepper, err := replay.NewStepper(tape, mahjong.DefaultConfig())
	if err != nil {
		log.Fatalf("[ReplayDump] Failed to init stepper: %v", err)
	}

	rounds := 0
	for {
		ev, err := stepper.Step()
		if err != nil {
			if err == replay.ErrEndOfTape {
				break
			}
			log.Fatalf("[ReplayDump] %v", err)
		}
		if _, ok := ev.(tenhou.BeginRound); ok {
			rounds++
		}
		if *verbose {
			log.Printf("[ReplayDump] step %d: %T", stepper.Pos()-1, ev)
		}
	}

	snap := stepper.Table().Snapshot()
	fmt.Printf("rounds played: %d\n", rounds)
	fmt.Printf("wall remaining: %d\n", snap.Wall)
	for _, p := range snap.Players {
		riichi := ""
		if p.IsRiichi {
			riichi = " (riichi)"
		}
		fmt.Printf("seat %d %-12s %6d pts, %d melds, %d discards%s\n",
			p.Seat, p.Name, p.Score, len(p.Melds), len(p.History), riichi)
	}
	for _, ind := range snap.DoraIndicators {
		fmt.Printf("dora indicator: %v\n", ind)
	}
}
