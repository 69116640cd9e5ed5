// Mimic CLI - manage shape snapshots and introspect Go packages
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/mimic/goshape"
	"github.com/chazu/mimic/mock"
	"github.com/chazu/mimic/store"
)

func main() {
	dbPath := flag.String("db", "mimic.db", "Snapshot database path")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mimic [options] <command> [args...]\n\n")
		fmt.Fprintf(os.Stderr, "Manages shape snapshots stored in a local database.\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  list                       List stored snapshots\n")
		fmt.Fprintf(os.Stderr, "  show <name>                Print a snapshot's member tree\n")
		fmt.Fprintf(os.Stderr, "  export <name> <file>       Write a snapshot to a file\n")
		fmt.Fprintf(os.Stderr, "  import <name> <file>       Read a snapshot from a file\n")
		fmt.Fprintf(os.Stderr, "  delete <name>              Remove a snapshot\n")
		fmt.Fprintf(os.Stderr, "  introspect <name> <pkg>    Snapshot a Go package's exported API\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mimic list\n")
		fmt.Fprintf(os.Stderr, "  mimic show payments-client\n")
		fmt.Fprintf(os.Stderr, "  mimic -db fixtures.db import payments-client shape.bin\n")
		fmt.Fprintf(os.Stderr, "  mimic introspect strings-api strings\n")
	}
	flag.Parse()

	if *verbose {
		commonlog.Configure(1, nil)
	} else {
		commonlog.Configure(0, nil)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	s, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", *dbPath, err)
		os.Exit(1)
	}
	defer s.Close()

	if err := run(s, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(s *store.Store, cmd string, args []string) error {
	switch cmd {
	case "list":
		return runList(s)
	case "show":
		if len(args) != 1 {
			return errors.New("usage: mimic show <name>")
		}
		return runShow(s, args[0])
	case "export":
		if len(args) != 2 {
			return errors.New("usage: mimic export <name> <file>")
		}
		return runExport(s, args[0], args[1])
	case "import":
		if len(args) != 2 {
			return errors.New("usage: mimic import <name> <file>")
		}
		return runImport(s, args[0], args[1])
	case "delete":
		if len(args) != 1 {
			return errors.New("usage: mimic delete <name>")
		}
		return s.Delete(args[0])
	case "introspect":
		if len(args) != 2 {
			return errors.New("usage: mimic introspect <name> <pkg>")
		}
		return runIntrospect(s, args[0], args[1])
	default:
		return fmt.Errorf("unknown command %q (run mimic with no arguments for usage)", cmd)
	}
}

func runList(s *store.Store) error {
	infos, err := s.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No snapshots stored.")
		return nil
	}
	for _, info := range infos {
		fmt.Printf("%-30s %8d bytes  %s\n", info.Name, info.Size, info.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runShow(s *store.Store, name string) error {
	n, err := s.Load(name)
	if err != nil {
		return err
	}
	printNode(os.Stdout, name, n, 0)
	return nil
}

func runExport(s *store.Store, name, path string) error {
	n, err := s.Load(name)
	if err != nil {
		return err
	}
	data, err := mock.MarshalMetadata(n)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Exported %s (%d bytes) to %s\n", name, len(data), path)
	return nil
}

func runImport(s *store.Store, name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	n, err := mock.UnmarshalMetadata(data)
	if err != nil {
		return err
	}
	if err := s.Save(name, n); err != nil {
		return err
	}
	fmt.Printf("Imported %s from %s\n", name, path)
	return nil
}

func runIntrospect(s *store.Store, name, importPath string) error {
	n, err := goshape.Introspect(importPath, nil)
	if err != nil {
		return err
	}
	if err := s.Save(name, n); err != nil {
		return err
	}
	fmt.Printf("Snapshotted %s as %s (%d members)\n", importPath, name, len(n.Members))
	return nil
}

// printNode renders a metadata tree as an indented member listing.
func printNode(w *os.File, label string, n *mock.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	desc := string(n.Type)
	switch {
	case n.Ref != nil:
		desc = fmt.Sprintf("-> #%d", *n.Ref)
	case n.Type == mock.TypeFunction && n.Name != "":
		desc = fmt.Sprintf("function %s", n.Name)
	case n.Type == mock.TypeConstant:
		desc = fmt.Sprintf("constant %v", n.Value.Data)
	}
	if n.RefID != nil {
		desc = fmt.Sprintf("%s #%d", desc, *n.RefID)
	}
	fmt.Fprintf(w, "%s%s: %s\n", indent, label, desc)

	names := make([]string, 0, len(n.Members))
	for name := range n.Members {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		printNode(w, name, n.Members[name], depth+1)
	}
}
