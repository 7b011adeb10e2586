// Package graph renders timelines as Mermaid charts.
package graph
