package utils

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/takoeight0821/lox/token"
	"gopkg.in/yaml.v3"
)

// Diagnostic is a scan or syntax error tied to a source line.
type Diagnostic struct {
	Line    int
	Where   string
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// ErrorLine reports an error with no token context, as the scanner does.
func ErrorLine(line int, message string) Diagnostic {
	return Diagnostic{Line: line, Message: message}
}

// ErrorAt reports an error at the given token.
func ErrorAt(where token.Token, message string) Diagnostic {
	if where.Kind == token.EOF {
		return Diagnostic{Line: where.Line, Where: " at end", Message: message}
	}
	return Diagnostic{Line: where.Line, Where: fmt.Sprintf(" at '%s'", where.Lexeme), Message: message}
}

// Flatten expands errors built with errors.Join into their leaves.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	if errs, ok := err.(interface{ Unwrap() []error }); ok {
		var leaves []error
		for _, err := range errs.Unwrap() {
			leaves = append(leaves, Flatten(err)...)
		}
		return leaves
	}
	return []error{err}
}

type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func ReadTestData(s []byte) []TestData {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data
}

// FindSourceFiles returns the .lox files under root in lexical order.
func FindSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".lox" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	return files, nil
}
