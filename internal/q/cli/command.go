package cli

// RunFunc is a command handler.
type RunFunc func(c *Context) error

// Command defines one CLI command in a command tree.
//
// glowcat is mostly a single-command program: the root command does the work,
// and a couple of informational subcommands (ex: "themes") hang off it.
type Command struct {
	// Name is the token used to invoke this command (e.g. "themes" in "glowcat themes").
	Name string

	// Aliases are additional tokens that invoke this command.
	Aliases []string

	Short   string
	Long    string
	Example string

	// UsageArgs describes the positional arguments in the usage line
	// (ex: "[FILE ...]"). Empty means the command takes no positionals.
	UsageArgs string

	Run RunFunc // optional for the root when it has children; required otherwise

	parent   *Command
	children []*Command
	flags    *FlagSet
}

// AddCommand adds child commands under c.
func (c *Command) AddCommand(children ...*Command) {
	for _, child := range children {
		if child == nil {
			panic("cli: AddCommand called with nil child")
		}
		if child.parent != nil {
			panic("cli: AddCommand called with a child already attached to a parent")
		}
		if child.Name == "" {
			panic("cli: AddCommand called with a child with empty Name")
		}
		c.children = append(c.children, child)
		child.parent = c
	}
}

// Commands returns the direct children of c.
func (c *Command) Commands() []*Command {
	out := make([]*Command, len(c.children))
	copy(out, c.children)
	return out
}

// Flags returns c's flags, creating the set on first use.
func (c *Command) Flags() *FlagSet {
	if c.flags == nil {
		c.flags = newFlagSet()
	}
	return c.flags
}

func (c *Command) childByToken(token string) *Command {
	for _, child := range c.children {
		if child.Name == token {
			return child
		}
		for _, alias := range child.Aliases {
			if alias == token {
				return child
			}
		}
	}
	return nil
}

func (c *Command) displayName(root *Command) string {
	if c == root || c.parent == nil {
		return root.Name
	}
	return root.Name + " " + c.Name
}
