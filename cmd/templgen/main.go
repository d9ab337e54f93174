package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"postpage/framework/templgen"
)

type multiFlag []string

func (m *multiFlag) String() string {
	return strings.Join(*m, ",")
}

func (m *multiFlag) Set(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return errors.New("value cannot be empty")
	}
	*m = append(*m, trimmed)
	return nil
}

func main() {
	var paths multiFlag
	var basePath string
	var check bool

	flag.Var(&paths, "path", "directory to scan for .templ files (repeatable)")
	flag.StringVar(&basePath, "base", ".", "base path for file names embedded in generated output")
	flag.BoolVar(&check, "check", false, "fail if generated files differ instead of writing them")
	flag.Parse()

	if len(paths) == 0 {
		paths = multiFlag{"."}
	}

	if _, err := templgen.Run(templgen.Config{
		Paths:    paths,
		BasePath: basePath,
		Check:    check,
	}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "templgen: %v\n", err)
		os.Exit(1)
	}
}
