// Package internal provides the core functionality for a Ruby linting tool.
//
// This package implements a flexible and extensible linting engine that
// analyzes Ruby source files for potential issues and style violations. It
// is designed to be easily extendable with custom lint rules while providing
// a set of default rules out of the box.
//
// Key components:
//
// Engine: The main linting engine that coordinates the linting process.
// It manages a collection of lint rules and applies them to the given source
// files.
//
// LintRule: An interface that defines the contract for all lint rules.
// Each lint rule must implement the Check method to analyze the code and
// return issues.
//
// SourceCode: A simple structure to represent the content of a source file
// as a collection of lines.
//
// Usage:
//
//	engine, err := internal.NewEngine(".", nil, nil)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run("path/to/file.rb")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("Found issue: %s at %s\n", issue.Message, issue.Start)
//	}
//
// This package is intended for internal use within the linting tool and
// should not be imported by external packages.
package internal
