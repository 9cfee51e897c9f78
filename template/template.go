// Package template expands {{ CEL expression }} placeholders in slide text.
package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/cel-go/cel"
)

var exprReg = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Expand replaces every {{ expr }} in text with the value of the CEL expression expr.
// Each key of vars is declared as a string variable. Text without placeholders is returned as is.
// The first failing expression aborts the expansion.
func Expand(text string, vars map[string]string) (string, error) {
	if !exprReg.MatchString(text) {
		return text, nil
	}
	opts := make([]cel.EnvOption, 0, len(vars))
	activation := make(map[string]any, len(vars))
	for k, v := range vars {
		opts = append(opts, cel.Variable(k, cel.StringType))
		activation[k] = v
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to declare variables: %w", err)
	}

	var evalErr error
	expanded := exprReg.ReplaceAllStringFunc(text, func(match string) string {
		if evalErr != nil {
			return match
		}
		v, err := eval(env, strings.TrimSpace(match[2:len(match)-2]), activation)
		if err != nil {
			evalErr = err
			return match
		}
		return v
	})
	if evalErr != nil {
		return "", evalErr
	}
	return expanded, nil
}

func eval(env *cel.Env, expr string, activation map[string]any) (string, error) {
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return "", fmt.Errorf("failed to compile {{%s}}: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return "", fmt.Errorf("failed to build {{%s}}: %w", expr, err)
	}
	out, _, err := prg.Eval(activation)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate {{%s}}: %w", expr, err)
	}
	return fmt.Sprintf("%v", out.Value()), nil
}
