// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package trace

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

// Sink consumes a flow and presents it
type Sink interface {
	Render(ctx context.Context, flow Flow) error
}

// DefaultWidth is the chart width in pixels
const DefaultWidth = 1200

// Plotly figure types, limited to the sankey fields we set

type figure struct {
	Data   []sankey `json:"data"`
	Layout layout   `json:"layout"`
}

type sankey struct {
	Type string     `json:"type"`
	Node sankeyNode `json:"node"`
	Link sankeyLink `json:"link"`
}

type sankeyNode struct {
	Pad       int      `json:"pad"`
	Thickness int      `json:"thickness"`
	Line      line     `json:"line"`
	Label     []string `json:"label"`
	Color     []string `json:"color"`
}

type line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type sankeyLink struct {
	Source []int    `json:"source"`
	Target []int    `json:"target"`
	Value  []int    `json:"value"`
	Color  []string `json:"color"`
}

type layout struct {
	Title       title        `json:"title"`
	Font        font         `json:"font"`
	Width       int          `json:"width"`
	Annotations []annotation `json:"annotations"`
}

type title struct {
	Text string `json:"text"`
}

type font struct {
	Size int `json:"size"`
}

type annotation struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	ShowArrow bool    `json:"showarrow"`
	Text      string  `json:"text"`
}

// Figure builds the Plotly sankey figure for a flow
func Figure(flow Flow, width int) ([]byte, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	link := sankeyLink{
		Source: make([]int, len(flow.Links)),
		Target: make([]int, len(flow.Links)),
		Value:  make([]int, len(flow.Links)),
		Color:  make([]string, len(flow.Links)),
	}
	for i, l := range flow.Links {
		link.Source[i] = l.Source
		link.Target[i] = l.Target
		link.Value[i] = l.Value
		link.Color[i] = l.Color
	}

	fig := figure{
		Data: []sankey{{
			Type: "sankey",
			Node: sankeyNode{
				Pad:       50,
				Thickness: 20,
				Line:      line{Color: "black", Width: 0.5},
				Label:     flow.Labels(),
				Color:     flow.Colors(),
			},
			Link: link,
		}},
		Layout: layout{
			Title: title{Text: flow.Title},
			Font:  font{Size: 10},
			Width: width,
			Annotations: []annotation{
				{X: 0, Y: 1.05, XRef: "paper", YRef: "paper", Text: "First round"},
				{X: 1, Y: 1.05, XRef: "paper", YRef: "paper", Text: "Final round"},
			},
		},
	}

	data, err := json.Marshal(fig)
	if err != nil {
		return nil, fmt.Errorf("failed to encode figure: %w", err)
	}
	return data, nil
}

// JSONSink writes the Plotly figure as JSON
type JSONSink struct {
	W     io.Writer
	Width int
}

func (s JSONSink) Render(ctx context.Context, flow Flow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Figure(flow, s.Width)
	if err != nil {
		return err
	}
	if _, err := s.W.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write figure: %w", err)
	}
	return nil
}

var page = template.Must(template.New("sankey").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
</head>
<body>
<div id="chart"></div>
<script>
var fig = {{.Figure}};
Plotly.newPlot("chart", fig.data, fig.layout);
</script>
</body>
</html>
`))

// PlotlySink writes a standalone HTML page that draws the flow as a sankey chart
type PlotlySink struct {
	W     io.Writer
	Width int
}

func (s PlotlySink) Render(ctx context.Context, flow Flow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Figure(flow, s.Width)
	if err != nil {
		return err
	}

	err = page.Execute(s.W, struct {
		Title  string
		Figure template.JS
	}{
		Title:  flow.Title,
		Figure: template.JS(data),
	})
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
