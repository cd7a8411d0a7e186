package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

func (r *runner) runShell(ctx context.Context, persistent bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	svc, closeFn, err := r.openService(!persistent)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	fmt.Fprintln(r.out, "bmitracker shell (type 'help' for commands, 'exit' to quit)")
	for {
		fmt.Fprint(r.out, "\n> ")
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			break
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		args, err := splitArgs(line)
		if err != nil {
			fmt.Fprintln(r.errOut, "Error:", err)
			continue
		}
		child := &runner{open: r.open, in: r.in, out: r.out, errOut: r.errOut, svc: svc, log: r.log}
		cmd := child.rootCmd(false)
		cmd.SetArgs(args)
		if err := cmd.ExecuteContext(ctx); err != nil {
			fmt.Fprintln(r.errOut, "Error:", err)
		}
	}
	return r.in.Err()
}

// splitArgs splits a shell line on spaces. Single or double quotes group
// words, so "Mary Jane" is one argument.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		hasWord bool
	)
	for _, c := range line {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteRune(c)
			}
		case c == '"' || c == '\'':
			quote = c
			hasWord = true
		case c == ' ' || c == '\t':
			if hasWord {
				args = append(args, cur.String())
				cur.Reset()
				hasWord = false
			}
		default:
			cur.WriteRune(c)
			hasWord = true
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if hasWord {
		args = append(args, cur.String())
	}
	return args, nil
}
