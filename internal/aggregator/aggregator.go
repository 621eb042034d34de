// Package aggregator contains the concrete aggregator plugins. Each
// aggregator consumes the merged per-file results of its category's
// analysers and adds cross-cutting messages.
package aggregator
