package abilitree

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/abilitree/pkg/domain"
)

// Runner handles an interactive session on one class using provided IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
//
// Each input line is an ability name to click, or one of the commands
// "reset", "status" and "exit".
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer TreeRenderer

	// Tasks carries work that must not overlap the session, such as a
	// catalog reload. Each task runs on the session goroutine between two
	// commands, and the tree is redrawn afterwards.
	Tasks <-chan func(context.Context)
}

type inputLine struct {
	text string
	err  error
}

// TreeRenderer draws the current state of a tree. It is called after every
// change so that frontends can redraw without coupling the core package.
type TreeRenderer func(*Tree) (string, error)

// NewRunner creates a new Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the session loop until exit or end of input.
func (r *Runner) Run(ctx context.Context, engine *Engine, class string) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	writer := r.Output

	tree, err := engine.Tree(class)
	if err != nil {
		return err
	}

	lines := make(chan inputLine)
	done := make(chan struct{})
	defer close(done)
	go readLines(bufio.NewReader(r.Input), lines, done)

	if !r.Headless {
		fmt.Fprintf(writer, "--- abilitree: %s (root %s) ---\n", class, tree.Root())
	}
	r.draw(tree)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprintf(writer, "[%d/%d] > ", tree.Ledger().Remaining(), tree.Ledger().Total())
		}

		var line inputLine
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-r.Tasks:
			task(ctx)
			if current, terr := engine.Tree(class); terr == nil {
				tree = current
			}
			r.draw(tree)
			continue
		case line = <-lines:
		}

		// Pick up a tree swapped by Engine.Reload.
		if current, terr := engine.Tree(class); terr == nil {
			tree = current
		}
		input := strings.TrimSpace(line.text)
		err := line.err
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				// Graceful exit on EOF
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		switch input {
		case "":
		case "exit", "quit":
			fmt.Fprintln(writer, "Bye!")
			return nil
		case "reset":
			changes, err := tree.Reset(ctx)
			if err != nil {
				fmt.Fprintf(writer, "! %v\n", err)
				break
			}
			printTransitions(writer, changes)
			r.draw(tree)
		case "status":
			s := tree.Status()
			fmt.Fprintf(writer, "%d/%d points spent, enabled: %s\n", s.Spent(), s.Budget, strings.Join(s.Enabled, ", "))
		default:
			name := resolve(tree, input)
			out, err := tree.Click(ctx, name)
			if err != nil {
				// Rejections are part of play, not failures of the session.
				fmt.Fprintf(writer, "! %v\n", err)
				break
			}
			printTransitions(writer, out.Transitions)
			r.draw(tree)
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

// readLines feeds lines to the session until the reader fails or the
// session ends. The last line carries the read error.
func readLines(reader *bufio.Reader, lines chan<- inputLine, done <-chan struct{}) {
	for {
		text, err := reader.ReadString('\n')
		select {
		case lines <- inputLine{text: text, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (r *Runner) draw(tree *Tree) {
	if r.Renderer == nil {
		return
	}
	out, err := r.Renderer(tree)
	if err != nil {
		fmt.Fprintf(r.Output, "! render: %v\n", err)
		return
	}
	fmt.Fprintln(r.Output, strings.TrimRight(out, "\n"))
}

func printTransitions(w io.Writer, changes []domain.Transition) {
	for _, tr := range changes {
		fmt.Fprintf(w, "  %s: %s -> %s\n", tr.Ability, tr.From, tr.To)
	}
}

// resolve matches input against ability names ignoring case, so players can
// type "bash" for "Bash". Unmatched input is passed through for Click to reject.
func resolve(tree *Tree, input string) string {
	for _, n := range tree.Nodes() {
		if strings.EqualFold(n.Name, input) {
			return n.Name
		}
	}
	return input
}
