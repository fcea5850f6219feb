package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Canopy.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Teal/Green)
	s1 := termenv.String("   ____                           ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("  / ___|__ _ _ __   ___  _ __  _   _ ").Foreground(p.Color("#34d399"))
	s3 := termenv.String(" | |   / _` | '_ \\ / _ \\| '_ \\| | | |").Foreground(p.Color("#4ade80"))
	s4 := termenv.String(" | |__| (_| | | | | (_) | |_) | |_| |").Foreground(p.Color("#a3e635"))
	s5 := termenv.String("  \\____\\__,_|_| |_|\\___/| .__/ \\__, |").Foreground(p.Color("#facc15"))
	s6 := termenv.String("                        |_|    |___/ ").Foreground(p.Color("#fb923c"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Printf("  v%s\n\n", version)
}
