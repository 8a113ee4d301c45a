// Package pkg provides the core libraries for chartbridge data-to-chart mapping.
//
// # Overview
//
// Chartbridge turns tabular data into declarative chart configurations shaped
// for an external charting front end, and keeps already-rendered charts
// updatable across that boundary. The pkg directory is organized into:
//
//  1. [table] - Tabular data model and CSV/XLSX loaders
//  2. [chart] - Column resolution, dataset builders, chart assembly, palette
//  3. [options] - Option trees, per-type defaults, deep merge
//  4. [bridge] - Live-update proxy, message protocol, transports, registry
//  5. [cache] - Build-result caching (memory, file)
//  6. [observability] - Pluggable hooks for build, bridge, and cache events
//
// # Architecture
//
// The typical data flow through chartbridge:
//
//	CSV/XLSX/inline columns
//	         ↓
//	    [table] package (validate shape, infer column kinds)
//	         ↓
//	    [chart] package (resolve roles, build datasets, merge options)
//	         ↓
//	    configuration JSON → charting front end
//	         ↓
//	    [bridge] package (push data/option/dataset updates to the live chart)
//
// # Quick Start
//
// Build a configuration and push an update to the rendered instance:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/chartbridge/pkg/bridge"
//	    "github.com/matzehuels/chartbridge/pkg/chart"
//	    "github.com/matzehuels/chartbridge/pkg/table"
//	)
//
//	// 1. Shape the data
//	tbl, _ := table.New(
//	    table.Column{Name: "month", Values: []any{"Jan", "Feb", "Mar"}},
//	    table.Column{Name: "revenue", Values: []any{120.0, 95.5, 140.2}},
//	)
//
//	// 2. Build the configuration
//	cfg, _ := chart.Build(tbl, chart.TypeBar, chart.BuildOptions{
//	    LabelColumn: "month",
//	})
//
//	// 3. Bind a proxy once the chart is rendered
//	p := bridge.NewProxy(bridge.NewHTTPTransport("http://localhost:8753", nil))
//	_ = p.Bind(context.Background(), cfg)
//
//	// 4. Push fresh data without re-specifying columns
//	_ = p.UpdateData(context.Background(), tbl, chart.Meta{})
package pkg
