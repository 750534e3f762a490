package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/mattn/go-isatty"

	"github.com/Zachkp/portfolio/internal/contactform"
	"github.com/Zachkp/portfolio/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Server string `help:"Base URL of the portfolio server." env:"CONTACT_SERVER" default:"http://localhost:8080"`

	out io.Writer
}

func (g *Globals) stdout() io.Writer {
	if g.out != nil {
		return g.out
	}
	return os.Stdout
}

// CLI is the top-level command structure.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Send    SendCmd          `cmd:"" help:"Send a contact message."`
	Form    FormCmd          `cmd:"" help:"Fill in the contact form interactively."`
}

// SendCmd submits one message without a UI.
type SendCmd struct {
	Name    string `help:"Your name." required:""`
	Email   string `help:"Your email address." required:""`
	Message string `help:"Message body." required:""`
}

// Run executes the send command.
func (c *SendCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctrl := contactform.New(contactform.NewHTTPSender(g.Server, nil))
	defer ctrl.Close()

	ctrl.UpdateField(contactform.FieldName, c.Name)
	ctrl.UpdateField(contactform.FieldEmail, c.Email)
	ctrl.UpdateField(contactform.FieldMessage, c.Message)

	err := ctrl.Submit(ctx)
	fmt.Fprintln(g.stdout(), ctrl.Snapshot().Status)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// FormCmd runs the terminal form.
type FormCmd struct{}

var errNotTerminal = errors.New("form needs an interactive terminal, use 'contact send' instead")

// Run executes the form command.
func (c *FormCmd) Run(g *Globals) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errNotTerminal
	}

	ctrl := contactform.New(contactform.NewHTTPSender(g.Server, nil))
	defer ctrl.Close()

	if _, err := tea.NewProgram(tui.New(ctrl)).Run(); err != nil {
		return fmt.Errorf("form: %w", err)
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contact"),
		kong.Description("Send a message through the portfolio contact form."),
		kong.Vars{"version": version + " " + commit},
	)
	if err := ctx.Run(&cli.Globals); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
