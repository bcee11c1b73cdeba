// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package trace turns a tabulation history into voter-flow data for charts.

# Flow

Export builds one node per credited candidate per round and one link per
(source, target) pair between consecutive rounds, weighted by the number
of voters who moved along it:

	flow := trace.Export(history, "Best pizza – Vote by Ranking")

Node identity is candidate plus round, so "X" in round 0 and "X" in
round 1 are separate nodes with the same label.

Colors are cosmetic. Each candidate keeps one palette color across all
rounds; links take their target's color at lower opacity.

# Sinks

A Sink renders a flow. Two are provided:

  - PlotlySink: a standalone HTML page with a Plotly sankey chart
  - JSONSink: the Plotly figure as JSON, for other front ends

	f, _ := os.Create("pizza.html")
	defer f.Close()
	err := trace.PlotlySink{W: f}.Render(ctx, flow)
*/
package trace
