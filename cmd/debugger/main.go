package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Rennsou1/ymf271/internal/clock"
	"github.com/Rennsou1/ymf271/internal/debug"
	"github.com/Rennsou1/ymf271/internal/ymf271"
)

// Interactive debugger for a YMF271 synthesis session.
func main() {
	logger := debug.NewLogger(10000)
	logger.SetComponentEnabled(debug.ComponentRegister, true)
	logger.SetComponentEnabled(debug.ComponentEnvelope, true)
	logger.SetComponentEnabled(debug.ComponentPCM, true)
	logger.SetComponentEnabled(debug.ComponentDispatch, true)
	logger.SetComponentEnabled(debug.ComponentTimer, true)
	logger.SetComponentEnabled(debug.ComponentROM, true)
	logger.SetMinLevel(debug.LogLevelDebug)

	chip := ymf271.NewChip(16934400, logger)
	dbg := debug.NewDebugger()
	sched := clock.NewScheduler()
	sched.TimerAExpired = chip.TickTimerA
	sched.TimerBExpired = chip.TickTimerB

	var sampleLog *debug.SampleLogger
	var sampleCount uint64

	if len(os.Args) > 1 {
		if err := loadROM(chip, os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("PCM sample ROM loaded: %s\n", os.Args[1])
	}

	fmt.Printf("=== YMF271 Synthesis Debugger ===\n")
	fmt.Printf("Sample rate: %d Hz\n", chip.SampleRate())
	fmt.Printf("Type 'help' for commands\n\n")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("(debugger) ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "h":
			printHelp()

		case "load":
			if len(args) < 1 {
				fmt.Println("Usage: load <sample-rom-file>")
				continue
			}
			if err := loadROM(chip, args[0]); err != nil {
				fmt.Printf("Error loading ROM: %v\n", err)
				continue
			}
			fmt.Printf("Loaded %s\n", args[0])

		case "slotreg", "sr":
			if len(args) < 3 {
				fmt.Println("Usage: slotreg <slot> <register> <value>")
				fmt.Println("Example: slotreg 0 0x0 0x01   (key on slot 0)")
				continue
			}
			handleSlotReg(chip, dbg, args)

		case "group", "g":
			if len(args) < 3 {
				fmt.Println("Usage: group <index 0-11> <sync 0-3> <pfm 0|1>")
				continue
			}
			handleGroup(chip, args)

		case "write", "w":
			if len(args) < 2 {
				fmt.Println("Usage: write <port 0x0-0xf> <value>")
				continue
			}
			handleWrite(chip, args)

		case "break", "b":
			if len(args) < 1 {
				fmt.Println("Usage: break <slot>:<register> [value]")
				fmt.Println("Example: break 0:0x0       (any value)")
				fmt.Println("         break 0:0x0 0x01  (key-on only)")
				continue
			}
			handleBreakpoint(dbg, args)

		case "delete", "d":
			if len(args) < 1 {
				fmt.Println("Usage: delete <breakpoint-key>")
				continue
			}
			if dbg.RemoveBreakpoint(args[0]) {
				fmt.Printf("Breakpoint %s removed\n", args[0])
			} else {
				fmt.Printf("Breakpoint %s not found\n", args[0])
			}

		case "breakpoints", "bp":
			printBreakpoints(dbg)

		case "enable":
			if len(args) < 1 {
				fmt.Println("Usage: enable <breakpoint-key>")
				continue
			}
			if dbg.EnableBreakpoint(args[0]) {
				fmt.Printf("Breakpoint %s enabled\n", args[0])
			} else {
				fmt.Printf("Breakpoint %s not found\n", args[0])
			}

		case "disable":
			if len(args) < 1 {
				fmt.Println("Usage: disable <breakpoint-key>")
				continue
			}
			if dbg.DisableBreakpoint(args[0]) {
				fmt.Printf("Breakpoint %s disabled\n", args[0])
			} else {
				fmt.Printf("Breakpoint %s not found\n", args[0])
			}

		case "slots":
			printSlots(chip)

		case "groups":
			printGroups(chip)

		case "timers":
			printTimers(chip)

		case "tick":
			if len(args) < 1 {
				fmt.Println("Usage: tick <cycles>")
				continue
			}
			handleTick(chip, sched, args)

		case "step", "s":
			count := 1
			if len(args) > 0 {
				if n, err := strconv.Atoi(args[0]); err == nil {
					count = n
				}
			}
			sampleCount += renderSamples(chip, count, sampleLog, sampleCount)
			printSlots(chip)

		case "run":
			if len(args) < 1 {
				fmt.Println("Usage: run <sample-count>")
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Printf("Invalid sample count: %v\n", err)
				continue
			}
			sampleCount += renderSamples(chip, n, sampleLog, sampleCount)
			fmt.Printf("Rendered %d samples (total %d)\n", n, sampleCount)

		case "status":
			printStatus(chip, sampleCount)

		case "watch":
			if len(args) < 1 {
				fmt.Println("Usage: watch <expression>")
				continue
			}
			dbg.AddWatch(strings.Join(args, " "))
			fmt.Printf("Added watch: %s\n", strings.Join(args, " "))

		case "watches":
			printWatches(dbg)

		case "tracelog":
			if len(args) < 1 {
				fmt.Println("Usage: tracelog <filename>")
				continue
			}
			sl, err := debug.NewSampleLogger(args[0], 0, 0, chip)
			if err != nil {
				fmt.Printf("Error creating trace log: %v\n", err)
				continue
			}
			if sampleLog != nil {
				sampleLog.Close()
			}
			sampleLog = sl
			fmt.Printf("Logging sample trace to %s\n", args[0])

		case "clear":
			if len(args) > 0 && args[0] == "breakpoints" {
				dbg.ClearBreakpoints()
				fmt.Println("All breakpoints cleared")
			} else if len(args) > 0 && args[0] == "watches" {
				dbg.ClearWatches()
				fmt.Println("All watches cleared")
			} else {
				fmt.Println("Usage: clear <breakpoints|watches>")
			}

		case "reset":
			chip.Reset()
			sampleCount = 0
			fmt.Println("Chip reset")

		case "quit", "q", "exit":
			if sampleLog != nil {
				sampleLog.Close()
			}
			fmt.Println("Exiting debugger...")
			return

		default:
			fmt.Printf("Unknown command: %s\n", cmd)
			fmt.Println("Type 'help' for available commands")
		}
	}

	if sampleLog != nil {
		sampleLog.Close()
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  load <file>                  - Load PCM sample ROM")
	fmt.Println("  slotreg <slot> <reg> <val>    - Write a slot register directly")
	fmt.Println("  group <idx> <sync> <pfm>      - Set a group's sync mode and PFM flag")
	fmt.Println("  write <port> <val>            - Simulate a host port write (0x0-0xf)")
	fmt.Println("  break <slot>:<reg> [val]      - Break on a register write")
	fmt.Println("  delete <key>                  - Delete breakpoint")
	fmt.Println("  breakpoints                   - List all breakpoints")
	fmt.Println("  enable/disable <key>          - Enable/disable a breakpoint")
	fmt.Println("  slots                         - Show all active slot states")
	fmt.Println("  groups                        - Show all group states")
	fmt.Println("  timers                        - Show timer/IRQ state")
	fmt.Println("  tick <cycles>                 - Advance the timer scheduler")
	fmt.Println("  step [n]                      - Render n samples (default 1), show slots")
	fmt.Println("  run <n>                       - Render n samples silently")
	fmt.Println("  status                        - Show chip status")
	fmt.Println("  watch <expr>                  - Add watch expression")
	fmt.Println("  watches                       - Show watch expressions")
	fmt.Println("  tracelog <file>               - Start a per-sample trace log")
	fmt.Println("  clear <breakpoints|watches>   - Clear breakpoints or watches")
	fmt.Println("  reset                         - Reset the chip")
	fmt.Println("  quit                          - Exit debugger")
}

func loadROM(chip *ymf271.Chip, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	chip.AllocROM(uint32(len(data)))
	chip.WriteROM(0, data)
	return nil
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 32)
}

func handleSlotReg(chip *ymf271.Chip, dbg *debug.Debugger, args []string) {
	slot, err := strconv.Atoi(args[0])
	if err != nil || slot < 0 || slot >= 48 {
		fmt.Println("Invalid slot (0-47)")
		return
	}
	reg, err := parseUint(args[1])
	if err != nil {
		fmt.Printf("Invalid register: %v\n", err)
		return
	}
	val, err := parseUint(args[2])
	if err != nil {
		fmt.Printf("Invalid value: %v\n", err)
		return
	}

	if dbg.ShouldBreak(slot, uint8(reg), uint8(val)) {
		fmt.Printf("Breakpoint hit: slot %d reg 0x%02X = 0x%02X\n", slot, reg, val)
	}

	chip.WriteSlotRegister(slot, uint8(reg), uint8(val))
	fmt.Printf("slot %d reg 0x%02X = 0x%02X\n", slot, reg, val)
}

func handleGroup(chip *ymf271.Chip, args []string) {
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 0 || idx >= 12 {
		fmt.Println("Invalid group index (0-11)")
		return
	}
	sync, err := parseUint(args[1])
	if err != nil {
		fmt.Printf("Invalid sync mode: %v\n", err)
		return
	}
	pfm, err := parseUint(args[2])
	if err != nil {
		fmt.Printf("Invalid pfm flag: %v\n", err)
		return
	}
	chip.SetGroupControl(idx, uint8(sync), pfm != 0)
	fmt.Printf("group %d: sync=%d pfm=%v\n", idx, sync&3, pfm != 0)
}

func handleWrite(chip *ymf271.Chip, args []string) {
	port, err := parseUint(args[0])
	if err != nil {
		fmt.Printf("Invalid port: %v\n", err)
		return
	}
	val, err := parseUint(args[1])
	if err != nil {
		fmt.Printf("Invalid value: %v\n", err)
		return
	}
	chip.Write(uint8(port), uint8(val))
	fmt.Printf("port 0x%X = 0x%02X\n", port, val)
}

func handleBreakpoint(dbg *debug.Debugger, args []string) {
	parts := strings.Split(args[0], ":")
	if len(parts) != 2 {
		fmt.Println("Invalid address format. Use: slot:register")
		return
	}
	slot, err := strconv.Atoi(parts[0])
	if err != nil {
		fmt.Printf("Invalid slot: %v\n", err)
		return
	}
	reg, err := parseUint(parts[1])
	if err != nil {
		fmt.Printf("Invalid register: %v\n", err)
		return
	}

	matchAny := len(args) < 2
	var value uint64
	if !matchAny {
		value, err = parseUint(args[1])
		if err != nil {
			fmt.Printf("Invalid value: %v\n", err)
			return
		}
	}

	key := dbg.SetBreakpoint(slot, uint8(reg), uint8(value), matchAny)
	fmt.Printf("Breakpoint set at slot %d reg 0x%02X (key: %s)\n", slot, reg, key)
}

func printBreakpoints(dbg *debug.Debugger) {
	bps := dbg.GetAllBreakpoints()
	if len(bps) == 0 {
		fmt.Println("No breakpoints set")
		return
	}
	fmt.Println("Breakpoints:")
	for key, bp := range bps {
		status := "disabled"
		if bp.Enabled {
			status = "enabled"
		}
		fmt.Printf("  %s: slot %d reg 0x%02X (%s, hit %d times)\n", key, bp.Slot, bp.Register, status, bp.HitCount)
	}
}

func printSlots(chip *ymf271.Chip) {
	fmt.Println("Active slots:")
	any := false
	for i := 0; i < 48; i++ {
		d := chip.GetSlotDetail(i)
		if !d.Active {
			continue
		}
		any = true
		fmt.Printf("  slot %2d: env=%d vol=%5d alg=%X wave=%d block=%d fns=%d mul=%X tl=%X fb=%d accon=%v ch=%X,%X,%X,%X\n",
			i, d.EnvState, d.Volume, d.Algorithm, d.Waveform, d.Block, d.Fns, d.Multiple, d.TotalLevel, d.Feedback, d.Accon,
			d.Ch0, d.Ch1, d.Ch2, d.Ch3)
	}
	if !any {
		fmt.Println("  (none active)")
	}
}

func printGroups(chip *ymf271.Chip) {
	fmt.Println("Groups:")
	for i := 0; i < 12; i++ {
		g := chip.GetGroupDetail(i)
		fmt.Printf("  group %2d: sync=%d pfm=%v muted=%v\n", i, g.Sync, g.PFM, g.Muted)
	}
}

func printTimers(chip *ymf271.Chip) {
	timerA, timerB, enable := chip.TimerStatus()
	fmt.Printf("Timer A expired: %v   Timer B expired: %v\n", timerA, timerB)
	fmt.Printf("Enable register: 0x%02X\n", enable)
	fmt.Printf("Timer A period: %d cycles   Timer B period: %d cycles\n", chip.TimerAPeriod(), chip.TimerBPeriod())
}

func handleTick(chip *ymf271.Chip, sched *clock.Scheduler, args []string) {
	cycles, err := parseUint(args[0])
	if err != nil {
		fmt.Printf("Invalid cycle count: %v\n", err)
		return
	}
	sched.SetTimerA(uint64(chip.TimerAPeriod()), chip.TimerAPeriod() > 0)
	sched.SetTimerB(uint64(chip.TimerBPeriod()), chip.TimerBPeriod() > 0)
	if err := sched.Advance(cycles); err != nil {
		fmt.Printf("Error advancing clock: %v\n", err)
		return
	}
	fmt.Printf("Advanced %d cycles (clock now %d)\n", cycles, sched.GetCycle())
}

func renderSamples(chip *ymf271.Chip, n int, sampleLog *debug.SampleLogger, baseCount uint64) uint64 {
	if n <= 0 {
		return 0
	}
	left := make([]int32, n)
	right := make([]int32, n)
	chip.Update(n, left, right)

	if sampleLog != nil {
		timerA, timerB, _ := chip.TimerStatus()
		for i := 0; i < n; i++ {
			sampleLog.LogSample(&debug.SampleSnapshot{
				Sample:    baseCount + uint64(i),
				TimerA:    boolToByte(timerA),
				TimerB:    boolToByte(timerB),
				Status:    chip.Status1(),
				EndStatus: chip.EndStatus(),
			})
		}
	}
	return uint64(n)
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func printWatches(dbg *debug.Debugger) {
	watches := dbg.GetWatches()
	if len(watches) == 0 {
		fmt.Println("No watch expressions set")
		return
	}
	fmt.Println("Watch expressions:")
	for i, watch := range watches {
		fmt.Printf("  [%d] %s\n", i, watch.Expression)
	}
}

func printStatus(chip *ymf271.Chip, sampleCount uint64) {
	fmt.Printf("Chip status:\n")
	fmt.Printf("  Samples rendered: %d\n", sampleCount)
	fmt.Printf("  Sample rate: %d Hz\n", chip.SampleRate())
	fmt.Printf("  Status1: 0x%02X   Status2: 0x%02X\n", chip.Status1(), chip.Status2())
	printGroups(chip)
	printSlots(chip)
}
