// Command example walks through the ensure chains on a small card deck and
// prints whether each result matches what it should be.
//
// Run:
//
//	go run ./_example
package main

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/Gobd/ensure"
	"github.com/davecgh/go-spew/spew"
)

// Deck holds the cards a player has seen, most recent last.
type Deck struct {
	History []string `json:"history"`
}

func letters() []string {
	return []string{"A", "B", "C", "D"}
}

func check(label string, got []string, want []string) {
	fmt.Printf("%s: len %d, want %d: %t\n", label, len(got), len(want), len(got) == len(want))
	fmt.Printf("%s: values %s, want %s: %t\n", label, strings.Join(got, ","), strings.Join(want, ","), slices.Equal(got, want))
}

func main() {
	deck := []Deck{{History: letters()}}
	if _, err := ensure.ThatPath[string](&deck, "0", "history").HasNoMoreThan(3).Elements().ByShifting(); err != nil {
		log.Fatal(err)
	}
	check("shifting", deck[0].History, []string{"B", "C", "D"})

	arr2 := letters()
	if _, err := ensure.That(&arr2).HasNoMoreThan(2).Elements().ByPopping(); err != nil {
		log.Fatal(err)
	}
	check("popping", arr2, []string{"A", "B"})

	arr3 := letters()
	if _, err := ensure.That(&arr3).HasAtLeast(6).Elements().ByUnshifting(); err != nil {
		log.Fatal(err)
	}
	check("unshifting with no pad", arr3, []string{"", "", "A", "B", "C", "D"})

	arr4 := letters()
	if _, err := ensure.That(&arr4).HasAtLeast(6).Elements().ByUnshifting(" "); err != nil {
		log.Fatal(err)
	}
	check("unshifting with a pad", arr4, []string{" ", " ", "A", "B", "C", "D"})

	arr5 := letters()
	if _, err := ensure.That(&arr5).HasAtLeast(6).Elements().ByPushing(); err != nil {
		log.Fatal(err)
	}
	check("pushing with no pad", arr5, []string{"A", "B", "C", "D", "", ""})

	arr6 := letters()
	if _, err := ensure.That(&arr6).HasAtLeast(6).Elements().ByPushing(" "); err != nil {
		log.Fatal(err)
	}
	check("pushing with a pad", arr6, []string{"A", "B", "C", "D", " ", " "})

	// Elements without a pad hold nothing at all when the element type can.
	arr7 := []any{"A", "B", "C", "D"}
	if _, err := ensure.That(&arr7).HasAtLeast(6).Elements().ByPushing(); err != nil {
		log.Fatal(err)
	}
	fmt.Print(spew.Sdump(arr7))
}
