// Package authgatectl implements the operator command line for an authgate
// server. Every subcommand talks to the gateway through pkg/authsdk.
package authgatectl

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/authgate/pkg/authsdk"
	"github.com/aussiebroadwan/authgate/pkg/cryptox"
	"golang.org/x/term"
)

const (
	defaultURL = "http://localhost:3333"
	envURL     = "AUTHGATE_URL"
	envToken   = "AUTHGATE_TOKEN"
)

var ErrUsage = errors.New("usage: authgatectl <register|login|users|secret> [flags]")

// readPassword is a seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal reports whether fd is an interactive terminal.
var isTerminal = term.IsTerminal

// Run dispatches args[0] to its subcommand.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return ErrUsage
	}

	c := &cli{in: bufio.NewReader(stdin), stdin: stdin, out: stdout}

	switch args[0] {
	case "register":
		return c.register(ctx, args[1:])
	case "login":
		return c.login(ctx, args[1:])
	case "users":
		return c.users(ctx, args[1:])
	case "secret":
		return c.secret()
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, ErrUsage.Error())
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], ErrUsage)
	}
}

type cli struct {
	in    *bufio.Reader
	stdin io.Reader
	out   io.Writer
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	url := os.Getenv(envURL)
	if url == "" {
		url = defaultURL
	}
	return fs, fs.String("url", url, "gateway base URL (env "+envURL+")")
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs, url := newFlagSet("register")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	role := fs.String("role", "user", "role")
	generate := fs.Bool("generate-password", false, "generate a random password and print it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		password string
		err      error
	)
	if *generate {
		password, err = cryptox.GeneratePassword()
	} else {
		password, err = c.password("Password: ")
	}
	if err != nil {
		return err
	}

	u, err := authsdk.NewSDKClient(*url).Register(ctx, authsdk.RegisterRequest{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Password:  password,
		Role:      *role,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "registered %s (%s) id=%s\n", u.Email, u.Role, u.ID)
	if *generate {
		fmt.Fprintf(c.out, "password: %s\n", password)
	}
	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs, url := newFlagSet("login")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := c.password("Password: ")
	if err != nil {
		return err
	}

	session, err := authsdk.NewSDKClient(*url).AuthenticateWithPassword(ctx, *email, password)
	if err != nil {
		return err
	}

	// Only the token goes to stdout so it can be captured into AUTHGATE_TOKEN.
	fmt.Fprintln(c.out, session.Token())
	return nil
}

func (c *cli) users(ctx context.Context, args []string) error {
	fs, url := newFlagSet("users")
	token := fs.String("token", os.Getenv(envToken), "bearer token (env "+envToken+")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" {
		return fmt.Errorf("a token is required, run login first")
	}

	users, err := authsdk.NewSDKClient(*url).NewSessionFromToken(*token).ListUsers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\n",
			u.ID, u.FirstName, u.LastName, u.Email, u.Role, u.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

// secret prints a fresh random value for SECRET_KEY.
func (c *cli) secret() error {
	s, err := cryptox.GenerateSecret(cryptox.SecretSize)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, s)
	return nil
}

// password reads a password without echo when stdin is a terminal and falls
// back to a plain line otherwise, so it can be piped in scripts. Prompts go
// to stderr.
func (c *cli) password(prompt string) (string, error) {
	if f, ok := c.stdin.(*os.File); ok && isTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, prompt)
		pw, err := readPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
