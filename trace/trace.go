// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package trace

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/danielhkuo/ranked-choice/tabulate"
)

//go:embed palettes.json
var palettesJSON []byte

// Palettes are the node color sets, each color at alpha 0.8
var Palettes = mustPalettes(palettesJSON)

func mustPalettes(data []byte) [][]string {
	var palettes [][]string
	if err := json.Unmarshal(data, &palettes); err != nil {
		panic(fmt.Sprintf("invalid embedded palettes: %v", err))
	}
	return palettes
}

// Node is one candidate in one round.
// The same candidate in different rounds is a different node.
type Node struct {
	ID        int    `json:"id"`
	Candidate string `json:"candidate"`
	Round     int    `json:"round"`
	Votes     int    `json:"votes"`
	Color     string `json:"color"`
}

// Key identifies the node as candidate plus round
func (n Node) Key() string {
	return fmt.Sprintf("%s%d", n.Candidate, n.Round)
}

// Link counts the voters credited to Source in one round and to Target in the next
type Link struct {
	Source int    `json:"source"`
	Target int    `json:"target"`
	Value  int    `json:"value"`
	Color  string `json:"color"`
}

// Flow is the round-by-round voter flow handed to a Sink
type Flow struct {
	Title  string `json:"title"`
	Rounds int    `json:"rounds"`
	Nodes  []Node `json:"nodes"`
	Links  []Link `json:"links"`
}

// Labels returns the candidate name of every node, by node ID
func (f Flow) Labels() []string {
	return lo.Map(f.Nodes, func(n Node, _ int) string { return n.Candidate })
}

// Colors returns the color of every node, by node ID
func (f Flow) Colors() []string {
	return lo.Map(f.Nodes, func(n Node, _ int) string { return n.Color })
}

type options struct {
	palette int
}

// Option configures Export
type Option func(*options)

// WithPalette selects one of Palettes by index, wrapping out-of-range values
func WithPalette(i int) Option {
	return func(o *options) {
		o.palette = i
	}
}

type nodeKey struct {
	candidate string
	round     int
}

// Export reshapes a round history into nodes per round and links between
// consecutive rounds
func Export(history *tabulate.History, title string, opts ...Option) Flow {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	flow := Flow{Title: title, Nodes: []Node{}, Links: []Link{}}
	if history == nil {
		return flow
	}
	flow.Rounds = len(history.Rounds)

	colors := colorer{palette: palette(o.palette), assigned: make(map[string]string)}
	ids := make(map[nodeKey]int)

	for _, round := range history.Rounds {
		for _, count := range round.Tally() {
			id := len(flow.Nodes)
			ids[nodeKey{count.Candidate, round.Index}] = id
			flow.Nodes = append(flow.Nodes, Node{
				ID:        id,
				Candidate: count.Candidate,
				Round:     round.Index,
				Votes:     count.Votes,
				Color:     colors.of(count.Candidate),
			})
		}
	}

	for i := 0; i+1 < len(history.Rounds); i++ {
		from, to := history.Rounds[i], history.Rounds[i+1]
		weights := make(map[[2]int]int)
		for v := range from.Assignment {
			src := ids[nodeKey{from.Assignment[v], from.Index}]
			dst := ids[nodeKey{to.Assignment[v], to.Index}]
			weights[[2]int{src, dst}]++
		}
		for edge, value := range weights {
			flow.Links = append(flow.Links, Link{
				Source: edge[0],
				Target: edge[1],
				Value:  value,
				Color:  linkColor(flow.Nodes[edge[1]].Color),
			})
		}
	}

	sort.Slice(flow.Links, func(i, j int) bool {
		a, b := flow.Links[i], flow.Links[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Target < b.Target
	})

	return flow
}

func palette(i int) []string {
	n := len(Palettes)
	return Palettes[((i%n)+n)%n]
}

// colorer hands out palette colors per candidate, cycling when the
// palette runs out
type colorer struct {
	palette  []string
	assigned map[string]string
}

func (c *colorer) of(candidate string) string {
	if color, ok := c.assigned[candidate]; ok {
		return color
	}
	color := c.palette[len(c.assigned)%len(c.palette)]
	c.assigned[candidate] = color
	return color
}

// linkColor is the node color at alpha 0.3
func linkColor(nodeColor string) string {
	return strings.Replace(nodeColor, "0.8)", "0.3)", 1)
}
