// Package command parses the constrained mini-language the model emits:
// one call per line, a verb followed by a single parenthesized argument.
package command

import (
	"errors"
	"strings"
)

// Verbs of the mini-language.
const (
	VerbSay     = "say"
	VerbGo      = "go"
	VerbExamine = "examine"
	VerbThink   = "think"
)

// ErrMalformed reports input without a matched pair of parentheses.
var ErrMalformed = errors.New("malformed command: expected exactly 2 parentheses")

// UnrecognizedVerbError reports a verb outside the mini-language. The
// offending verb is kept so it can be echoed back to the model.
type UnrecognizedVerbError struct {
	Verb string
}

func (e *UnrecognizedVerbError) Error() string {
	return "unrecognized command " + e.Verb
}

// Action is one parsed call.
type Action struct {
	Verb string
	Arg  string
}

// Split extracts the verb before the first "(" and the argument up to
// the first ")". Nested parentheses are not supported; the first ")"
// terminates the argument even if text continues. One matching leading
// and trailing quote (" or ') is stripped from the argument, because
// the model loves quoting. On failure both results are empty.
func Split(line string) (verb, arg string, err error) {
	open := strings.Index(line, "(")
	closing := strings.Index(line, ")")
	if open == -1 || closing == -1 {
		return "", "", ErrMalformed
	}
	verb = line[:open]
	if closing > open {
		arg = line[open+1 : closing]
	}
	if len(arg) > 0 && (arg[0] == '"' || arg[0] == '\'') {
		arg = arg[1:]
	}
	if len(arg) > 0 && (arg[len(arg)-1] == '"' || arg[len(arg)-1] == '\'') {
		arg = arg[:len(arg)-1]
	}
	return verb, arg, nil
}

// Parse splits the line and checks the verb against the mini-language.
func Parse(line string) (Action, error) {
	verb, arg, err := Split(line)
	if err != nil {
		return Action{}, err
	}
	switch verb {
	case VerbSay, VerbGo, VerbExamine, VerbThink:
		return Action{Verb: verb, Arg: arg}, nil
	default:
		return Action{}, &UnrecognizedVerbError{Verb: verb}
	}
}
