// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/xenguest/xenstore/store"
)

var (
	keyStyle    = lipgloss.NewStyle().Bold(true)
	valueStyle  = lipgloss.NewStyle().Faint(true)
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func runTree(args []string) error {
	root := "/"
	switch len(args) {
	case 0:
	case 1:
		root = args[0]
	default:
		return errors.New("usage: xenstore tree [path]")
	}
	return withClient(func(client *store.Client) error {
		fmt.Fprintln(os.Stdout, keyStyle.Render(root))
		return printTree(os.Stdout, client, root, "")
	})
}

// printTree renders the subtree under path. Values that fail to read
// are shown as the key alone: some keys are permission-restricted for
// a guest, and a partial tree is more useful than an aborted one.
func printTree(out io.Writer, client *store.Client, path, prefix string) error {
	children, err := client.List(path)
	if err != nil {
		return err
	}

	for i, child := range children {
		branch, childPrefix := "├── ", prefix+"│   "
		if i == len(children)-1 {
			branch, childPrefix = "└── ", prefix+"    "
		}

		childPath := joinPath(path, child)
		line := prefix + branchStyle.Render(branch) + keyStyle.Render(child)
		if value, err := client.Read(childPath); err == nil && value != "" {
			line += valueStyle.Render(fmt.Sprintf(" = %q", value))
		}
		fmt.Fprintln(out, line)

		if err := printTree(out, client, childPath, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(parent, child string) string {
	if parent == "/" {
		return "/" + child
	}
	return parent + "/" + child
}
