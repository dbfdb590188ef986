package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/wippyai/wasm-memory/engine"
	"github.com/wippyai/wasm-memory/mem"
)

func main() {
	var (
		minPages    = flag.Uint("min", 1, "Minimum (initial) page count")
		maxPages    = flag.Uint("max", 4, "Maximum page count")
		growPages   = flag.Uint("grow", 0, "Pages to grow after creation")
		fill        = flag.String("fill", "", "Hex bytes to write, e.g. deadbeef")
		fillAt      = flag.Uint("at", 0, "Offset for -fill")
		dumpAt      = flag.Uint("dump", 0, "Offset to dump")
		dumpLen     = flag.Uint("len", 256, "Bytes to dump")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *minPages > 0xFFFFFFFF || *maxPages > 0xFFFFFFFF {
		fmt.Fprintln(os.Stderr, "Error: page counts must fit in 32 bits")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(uint32(*minPages), uint32(*maxPages)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(uint32(*minPages), uint32(*maxPages), uint32(*growPages), *fill, uint32(*fillAt), uint32(*dumpAt), uint32(*dumpLen)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(minPages, maxPages, growPages uint32, fill string, fillAt, dumpAt, dumpLen uint32) error {
	limits, err := mem.NewLimits(minPages, maxPages)
	if err != nil {
		return err
	}
	m, err := mem.NewInstance(limits)
	if err != nil {
		return err
	}
	defer m.Release()

	fmt.Printf("Memory: limits %s, %d pages (%d bytes)\n", limits, m.Size(), m.SizeBytes())

	if growPages > 0 {
		if err := m.Grow(growPages); err != nil {
			return err
		}
		fmt.Printf("Grown by %d pages to %d pages\n", growPages, m.Size())
	}

	if fill != "" {
		data, err := hex.DecodeString(fill)
		if err != nil {
			return fmt.Errorf("decode -fill: %w", err)
		}
		if err := m.SetData(data, fillAt); err != nil {
			return err
		}
		fmt.Printf("Wrote %d bytes at offset %d\n", len(data), fillAt)
	}

	acc := engine.NewAccessor(m)
	data, err := acc.Read(dumpAt, dumpLen)
	if err != nil {
		return err
	}
	fmt.Print(hexDump(data, dumpAt))
	return nil
}

// hexDump renders bytes in the classic 16-per-row offset/hex/ASCII layout.
func hexDump(data []byte, base uint32) string {
	out := ""
	for row := 0; row < len(data); row += 16 {
		end := row + 16
		if end > len(data) {
			end = len(data)
		}
		line := fmt.Sprintf("%08x  ", base+uint32(row))
		for i := row; i < row+16; i++ {
			if i < end {
				line += fmt.Sprintf("%02x ", data[i])
			} else {
				line += "   "
			}
			if i%16 == 7 {
				line += " "
			}
		}
		line += " |"
		for i := row; i < end; i++ {
			if data[i] >= 0x20 && data[i] < 0x7F {
				line += string(rune(data[i]))
			} else {
				line += "."
			}
		}
		line += "|\n"
		out += line
	}
	return out
}
