// Package topics adds file-based help topics to a cobra command tree. Topics
// are read from an fs.FS (typically an embed.FS compiled into the binary)
// and shown by `help <topic>` and `topics [name]`.
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/spf13/cobra"
)

// Topic is one help document.
type Topic struct {
	Name    string
	Ext     string
	Content string
}

// Options configures a Manager
type Options struct {
	// Extensions defaults to .txt and .md
	Extensions []string
	// Renderer defaults to PlainRenderer
	Renderer Renderer
}

// Manager holds the loaded topics.
type Manager struct {
	topics   map[string]*Topic
	renderer Renderer
}

// Load reads every file under dir in fsys whose extension is accepted.
// The topic name is the file name without extension.
func Load(fsys fs.FS, dir string, opts Options) (*Manager, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".txt", ".md"}
	}
	m := &Manager{topics: make(map[string]*Topic), renderer: opts.Renderer}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := path.Ext(p)
		if !contains(exts, ext) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Ext: ext, Content: string(data)}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to load help topics from %s", dir)
	}
	return m, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Get retrieves a topic by name
func (m *Manager) Get(name string) (*Topic, bool) {
	t, ok := m.topics[name]
	return t, ok
}

// Names returns the topic names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the rendered topic.
func (m *Manager) Render(name string) (string, bool) {
	t, ok := m.topics[name]
	if !ok {
		return "", false
	}
	return m.renderer.Render(t.Content, t.Ext), true
}

// NewCommand builds `topics [name]`: without a name it lists the topics.
func (m *Manager) NewCommand(short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   "topics [name]",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return m.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				m.list(cmd)
				return nil
			}
			rendered, ok := m.Render(args[0])
			if !ok {
				return errors.Newf(errors.ErrNotFound, "no help topic named %q", args[0])
			}
			_, err := fmt.Fprint(out, rendered)
			return err
		},
	}
}

func (m *Manager) list(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(out, "No help topics available.")
		return
	}
	fmt.Fprintln(out, "Available help topics:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintf(out, "\nUse '%s topics <name>' to read one.\n", cmd.Root().Name())
}

// Attach replaces the help command so that `help <topic>` shows topics and
// everything else resolves to command help.
func (m *Manager) Attach(root *cobra.Command) {
	root.SetHelpCommand(&cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			names := m.Names()
			for _, c := range root.Commands() {
				if c.IsAvailableCommand() {
					names = append(names, c.Name())
				}
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if rendered, ok := m.Render(args[0]); ok {
					_, err := fmt.Fprint(cmd.OutOrStdout(), rendered)
					return err
				}
			}
			target, _, err := root.Find(args)
			if err != nil || target == nil {
				return errors.Newf(errors.ErrNotFound, "unknown help topic %q", strings.Join(args, " "))
			}
			return target.Help()
		},
	})
}
