// Copyright 2026 The Xenstore Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

// Command xenstore is a small CLI over the XenStore guest client:
// read, write, list, and remove keys, dump a subtree, and stream
// watch notifications.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/xenguest/xenstore/lib/version"
	"github.com/xenguest/xenstore/store"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("xenstore", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	verbose := flags.BoolP("verbose", "v", false, "enable debug logging")
	showVersion := flags.Bool("version", false, "print version and exit")
	flags.Usage = printUsage

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if *showVersion {
		fmt.Printf("xenstore %s\n", version.Info())
		return 0
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	remaining := flags.Args()
	if len(remaining) == 0 {
		printUsage()
		return 2
	}

	if err := dispatch(remaining[0], remaining[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprint(os.Stderr, `usage: xenstore [-v] <command> [arguments]

commands:
  read <path>            print the value of a key
  write <path> <value>   set the value of a key
  rm <path>              remove a key and its subtree
  ls <path>              list the immediate children of a key
  tree [path]            render a subtree with values (default /)
  watch <path>           stream change notifications until interrupted

flags:
  -v, --verbose          enable debug logging
      --version          print version and exit
`)
}

func dispatch(command string, args []string) error {
	switch command {
	case "read":
		return runRead(args)
	case "write":
		return runWrite(args)
	case "rm":
		return runRemove(args)
	case "ls":
		return runList(args)
	case "tree":
		return runTree(args)
	case "watch":
		return runWatch(args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// withClient opens the device for the duration of one command.
func withClient(command func(*store.Client) error) error {
	client, err := store.New()
	if err != nil {
		return err
	}
	defer client.Close()
	return command(client)
}

func runRead(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: xenstore read <path>")
	}
	return withClient(func(client *store.Client) error {
		value, err := client.Read(args[0])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	})
}

func runWrite(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: xenstore write <path> <value>")
	}
	return withClient(func(client *store.Client) error {
		return client.Write(args[0], args[1])
	})
}

func runRemove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: xenstore rm <path>")
	}
	return withClient(func(client *store.Client) error {
		return client.Remove(args[0])
	})
}

func runList(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: xenstore ls <path>")
	}
	return withClient(func(client *store.Client) error {
		children, err := client.List(args[0])
		if err != nil {
			return err
		}
		for _, child := range children {
			fmt.Println(child)
		}
		return nil
	})
}

func runWatch(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: xenstore watch <path>")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return withClient(func(client *store.Client) error {
		watch, err := client.Watch(args[0])
		if err != nil {
			return err
		}
		defer watch.Close()

		fmt.Fprintf(os.Stderr, "watching %s (interrupt to stop)\n", watch.Path())
		for {
			select {
			case <-ctx.Done():
				return nil
			case path, ok := <-watch.Notifications():
				if !ok {
					return errors.New("watch stream ended unexpectedly")
				}
				fmt.Println(path)
			}
		}
	})
}
