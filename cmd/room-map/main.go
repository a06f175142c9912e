package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/VladWero08/SinisterEscape/room"
)

var yamlFlag = flag.Bool("yaml", false, "print the door graph as YAML")

// roomInfo is the YAML view of one room
type roomInfo struct {
	Room      int            `yaml:"room"`
	FreeCells int            `yaml:"free_cells"`
	Doors     map[string]int `yaml:"doors"`
	Grid      []string       `yaml:"grid"`
}

func main() {
	flag.Parse()

	rooms := make([]roomInfo, room.Count)
	for r := range rooms {
		rooms[r] = describe(r)
	}

	if *yamlFlag {
		out, err := yaml.Marshal(rooms)
		if err != nil {
			fmt.Fprintf(os.Stderr, "room-map: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	for _, info := range rooms {
		fmt.Printf("\n=== ROOM %d (%d free cells) ===\n", info.Room, info.FreeCells)
		for _, line := range info.Grid {
			fmt.Println(line)
		}
		for _, d := range room.Directions {
			fmt.Printf("  %-5s -> room %d\n", d, info.Doors[d.String()])
		}
	}

	if unreached := unreachable(); len(unreached) > 0 {
		fmt.Printf("\nUnreachable from room 0: %v\n", unreached)
		os.Exit(1)
	}
	fmt.Println("\nEvery room is reachable from room 0")
}

// describe draws room r: walls as blocks, door cells as their direction's initial
func describe(r int) roomInfo {
	info := roomInfo{
		Room:      r,
		FreeCells: room.FreeCells(r),
		Doors:     make(map[string]int, len(room.Directions)),
	}
	for _, d := range room.Directions {
		info.Doors[d.String()] = room.DoorTarget(r, d)
	}

	for row := 0; row < room.Size; row++ {
		var b strings.Builder
		for col := 0; col < room.Size; col++ {
			switch {
			case room.IsWall(r, row, col):
				b.WriteString("██")
			case row == 0 || row == room.Size-1 || col == 0 || col == room.Size-1:
				b.WriteString("<>")
			default:
				b.WriteString("  ")
			}
		}
		info.Grid = append(info.Grid, b.String())
	}
	return info
}

// unreachable walks the door graph from room 0 and returns the rooms it never visits
func unreachable() []int {
	seen := make([]bool, room.Count)
	queue := []int{0}
	seen[0] = true
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		for _, d := range room.Directions {
			next := room.DoorTarget(r, d)
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	var out []int
	for r, ok := range seen {
		if !ok {
			out = append(out, r)
		}
	}
	return out
}
