package parser

import "strings"

// SplitLines splits text into notebook source lines.
// Every line keeps its "\n" terminator; a final line without one is kept as is.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// trimTerminator removes a trailing "\n" or "\r\n".
func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
