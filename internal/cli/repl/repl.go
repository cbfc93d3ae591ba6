// Package repl provides an interactive shell over a live table.
//
//   - repl.go: read loop and command dispatch
//   - completer.go: command name matching and suggestions
//   - history.go: bounded, optionally persisted command history
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wizex/bucketmap/internal/cli/output"
	"github.com/wizex/bucketmap/pkg/htable"
)

const prompt = "bucketmap> "

// Table is the table the shell operates on.
type Table = htable.Table[string, string]

// REPL is a read-eval-print loop over a Table.
type REPL struct {
	input     io.Reader
	output    io.Writer
	table     *Table
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the shell's input and output.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithHistory replaces the default in-memory history.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// New creates a shell over t.
func New(t *Table, opts ...Option) *REPL {
	r := &REPL{
		input:     strings.NewReader(""),
		output:    io.Discard,
		table:     t,
		completer: NewCompleter(commandNames()),
		history:   NewHistory(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads commands until exit, quit or end of input.
func (r *REPL) Run() error {
	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, prompt)

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)

		line = strings.TrimSpace(line)
		if line == "" {
			if eof {
				fmt.Fprintln(r.output)
				return nil
			}
			continue
		}

		r.history.Add(line)
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "error: %v\n", err)
		}
		if eof {
			return nil
		}
	}
}

type handler struct {
	usage string
	args  int
	fn    func(r *REPL, args []string) error
}

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"insert":   {"insert KEY VALUE", 2, (*REPL).insert},
		"get":      {"get KEY", 1, (*REPL).get},
		"at":       {"at KEY", 1, (*REPL).at},
		"getorput": {"getorput KEY", 1, (*REPL).getOrInsert},
		"erase":    {"erase KEY", 1, (*REPL).erase},
		"has":      {"has KEY", 1, (*REPL).has},
		"append":   {"append KEY SUFFIX", 2, (*REPL).appendValue},
		"bucket":   {"bucket KEY", 1, (*REPL).bucket},
		"len":      {"len", 0, (*REPL).length},
		"list":     {"list", 0, (*REPL).list},
		"stats":    {"stats", 0, (*REPL).stats},
		"clear":    {"clear", 0, (*REPL).clear},
		"history":  {"history", 0, (*REPL).showHistory},
		"help":     {"help", 0, (*REPL).help},
	}
}

func commandNames() []string {
	names := make([]string, 0, len(handlers)+2)
	for name := range handlers {
		names = append(names, name)
	}
	return append(names, "exit", "quit")
}

func (r *REPL) execute(line string) error {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	h, ok := handlers[name]
	if !ok {
		if s := r.completer.Complete(name); len(s) > 0 {
			return fmt.Errorf("unknown command %q, did you mean: %s", name, strings.Join(s, ", "))
		}
		return fmt.Errorf("unknown command %q (try help)", name)
	}
	if h.args == 2 && len(args) > 2 {
		// Values may contain spaces.
		args = []string{args[0], strings.Join(args[1:], " ")}
	}
	if len(args) != h.args {
		return fmt.Errorf("usage: %s", h.usage)
	}
	return h.fn(r, args)
}

func (r *REPL) insert(args []string) error {
	r.table.Insert(args[0], args[1])
	fmt.Fprintln(r.output, "OK")
	return nil
}

func (r *REPL) get(args []string) error {
	if v, ok := r.table.Lookup(args[0]); ok {
		fmt.Fprintln(r.output, strconv.Quote(v))
		return nil
	}
	fmt.Fprintln(r.output, "(nil)")
	return nil
}

func (r *REPL) at(args []string) error {
	v, err := r.table.At(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(r.output, strconv.Quote(v))
	return nil
}

func (r *REPL) getOrInsert(args []string) error {
	v, existed := r.table.GetOrInsertWith(args[0], func() string { return "" })
	fmt.Fprintf(r.output, "%s (existed: %v)\n", strconv.Quote(v), existed)
	return nil
}

func (r *REPL) erase(args []string) error {
	fmt.Fprintln(r.output, boolInt(r.table.Erase(args[0])))
	return nil
}

func (r *REPL) has(args []string) error {
	fmt.Fprintln(r.output, boolInt(r.table.Contains(args[0])))
	return nil
}

func (r *REPL) appendValue(args []string) error {
	v, _ := r.table.Compute(args[0], func(old string, _ bool) (string, htable.ComputeOp) {
		return old + args[1], htable.UpdateOp
	})
	fmt.Fprintln(r.output, strconv.Quote(v))
	return nil
}

func (r *REPL) bucket(args []string) error {
	fmt.Fprintln(r.output, r.table.BucketIndex(args[0]))
	return nil
}

func (r *REPL) length([]string) error {
	fmt.Fprintln(r.output, r.table.Len())
	return nil
}

func (r *REPL) list([]string) error {
	t := &output.Table{Headers: []string{"BUCKET", "KEY", "VALUE"}}
	r.table.Range(func(k, v string) bool {
		t.AddRow(strconv.Itoa(r.table.BucketIndex(k)), k, strconv.Quote(v))
		return true
	})
	return t.Render(r.output)
}

func (r *REPL) stats([]string) error {
	return output.Histogram{Width: 30}.Render(r.output, r.table.Stats())
}

func (r *REPL) clear([]string) error {
	r.table.Clear()
	fmt.Fprintln(r.output, "OK")
	return nil
}

func (r *REPL) showHistory([]string) error {
	for i, e := range r.history.Entries() {
		fmt.Fprintf(r.output, "%4d  %s\n", i+1, e)
	}
	return nil
}

func (r *REPL) help([]string) error {
	t := &output.Table{}
	for _, name := range r.completer.Complete("") {
		if h, ok := handlers[name]; ok {
			t.AddRow(h.usage)
		}
	}
	t.AddRow("exit | quit")
	return t.Render(r.output)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
