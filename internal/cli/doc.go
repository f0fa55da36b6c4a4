// Package cli wires configuration, logging and metrics into the bbmi-export
// commands. Each command opens its workbook, runs one or more export jobs and
// reports what it wrote.
package cli
