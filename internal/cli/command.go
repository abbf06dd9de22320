package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

type Kind int

const (
	KindNoOp Kind = iota
	KindAdd
	KindList
	KindComplete
	KindReopen
	KindDelete
)

var kindNames = [...]string{"noop", "add", "list", "complete", "reopen", "delete"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Command is the single operation an invocation performs. Description is
// set for KindAdd, ID for KindComplete, KindReopen and KindDelete.
type Command struct {
	Kind        Kind
	Description string
	ID          int64
}

// operationFlags is also the precedence order when several are given.
var operationFlags = []string{"add", "list", "complete", "reopen", "delete"}

// RegisterFlags adds the operation flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("add", "a", "", "Add a new todo item")
	fs.BoolP("list", "l", false, "List all todo items")
	fs.Int64P("complete", "c", 0, "Mark a todo item as complete")
	fs.Int64P("reopen", "r", 0, "Reopen a completed todo item")
	fs.Int64P("delete", "d", 0, "Delete a todo item")
}

// ParseCommand builds the Command from parsed flags. The first operation
// flag set wins; any others are returned as ignored.
func ParseCommand(fs *pflag.FlagSet) (Command, []string, error) {
	var (
		cmd     Command
		ignored []string
	)
	for _, name := range operationFlags {
		if !fs.Changed(name) {
			continue
		}
		if cmd.Kind != KindNoOp {
			ignored = append(ignored, "--"+name)
			continue
		}

		var err error
		switch name {
		case "add":
			cmd.Kind = KindAdd
			cmd.Description, err = fs.GetString(name)
		case "list":
			var on bool
			on, err = fs.GetBool(name)
			if on {
				cmd.Kind = KindList
			}
		case "complete":
			cmd.Kind = KindComplete
			cmd.ID, err = fs.GetInt64(name)
		case "reopen":
			cmd.Kind = KindReopen
			cmd.ID, err = fs.GetInt64(name)
		case "delete":
			cmd.Kind = KindDelete
			cmd.ID, err = fs.GetInt64(name)
		}
		if err != nil {
			return Command{}, nil, fmt.Errorf("read --%s: %w", name, err)
		}
	}
	return cmd, ignored, nil
}
