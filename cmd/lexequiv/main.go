package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"lexequiv/internal/automaton"
	"lexequiv/internal/checker"
)

func main() {
	dotPrefix := flag.String("dot", "", "write <prefix>.left.dot and <prefix>.right.dot for the minimized DFAs")
	flag.Parse()

	var left, right string
	switch flag.NArg() {
	case 1:
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		blocks := splitBlocks(string(data))
		if len(blocks) != 2 {
			log.Fatalf("%s: want exactly 2 rule blocks separated by %%%% lines, got %d", flag.Arg(0), len(blocks))
		}
		left, right = blocks[0], blocks[1]
	case 2:
		for i, dst := range []*string{&left, &right} {
			data, err := os.ReadFile(flag.Arg(i))
			if err != nil {
				log.Fatal(err)
			}
			*dst = string(data)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: lexequiv [-dot prefix] <rules file with %% separator> | <left file> <right file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ld, rd, err := checker.CompileBlocks(left, right)
	if err != nil {
		log.Fatal(err)
	}

	if *dotPrefix != "" {
		names, err := writeDots(*dotPrefix, ld, rd)
		if err != nil {
			log.Fatal(err)
		}
		for _, name := range names {
			fmt.Printf("DOT written to %s\n", name)
		}
	}

	res, err := automaton.Compare(ld, rd)
	if err != nil {
		log.Fatal(err)
	}

	if res.OnlyLeft != nil {
		fmt.Printf("shortest string accepted by only the first block: %q\n", *res.OnlyLeft)
	}
	if res.OnlyRight != nil {
		fmt.Printf("shortest string accepted by only the second block: %q\n", *res.OnlyRight)
	}
	fmt.Println("blocks equivalent?", res.Equivalent)
}

// writeDots dumps both minimized DFAs, left before right, and returns the
// file names in that order.
func writeDots(prefix string, ld, rd *automaton.DFA) ([]string, error) {
	dumps := []struct {
		suffix string
		dfa    *automaton.DFA
	}{{"left", ld}, {"right", rd}}

	var names []string
	for _, dump := range dumps {
		name := prefix + "." + dump.suffix + ".dot"
		f, err := os.Create(name)
		if err != nil {
			return nil, err
		}
		automaton.WriteDot(f, dump.dfa)
		if err := f.Close(); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// splitBlocks cuts the file on lines containing only %%, lex-style.
func splitBlocks(text string) []string {
	var blocks []string
	var cur []string
	flush := func() {
		blocks = append(blocks, strings.Join(cur, "\n"))
		cur = nil
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "%%" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return blocks
}
