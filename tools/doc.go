// Package tools provides built-in tools for LLM-backed agents: file search,
// file reading, shell execution, clock access, and task delegation. Register
// them all with RegisterAll or pick individually.
package tools
