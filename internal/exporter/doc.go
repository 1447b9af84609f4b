// Package exporter persists finished aggregate tables as column-oriented
// CSV files, one per category, named after the category with an optional
// prefix. It is the sink collaborator of the category runner.
package exporter
