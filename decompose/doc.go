// Package decompose recovers the ordered stage list of a composed
// pipeline. It walks from the outermost adaptor to the base factory by
// iterative unwrapping and tags every stage with its registry metadata.
package decompose
