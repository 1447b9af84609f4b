// Package config loads the application configuration and the category
// catalog. Configuration comes from environment variables (TURNOVER_*
// prefix) layered over an optional YAML file, with env taking precedence.
// The catalog is an ordered list of categories, each naming the source files
// whose turnover is consolidated into one master table.
package config
