// Package logger provides structured logging for the planner built on
// zerolog. It supports JSON and console output, component-tagged child
// loggers, and a process-wide global logger for package-level use.
package logger
