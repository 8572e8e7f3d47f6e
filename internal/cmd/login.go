package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/config"
)

// RunInteractiveLogin prompts for credentials, authenticates, and
// persists the token. The password is read without echo when stdin is
// a terminal, otherwise from the reader (for tests and piping).
func RunInteractiveLogin(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "email: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("email is required")
	}

	fmt.Fprint(out, "password: ")
	password, err := readPassword(in, reader)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	fmt.Fprintln(out)
	if password == "" {
		return fmt.Errorf("password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{}
	}
	client := api.NewClient(api.ResolveBaseURL(cfg.ServerURL), api.NewAuthSession(""))

	resp, err := client.Login(username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	client.Session().Reset(resp.AccessToken)

	me, err := client.Me()
	if err != nil {
		return fmt.Errorf("fetch account: %w", err)
	}

	cfg.Token = resp.AccessToken
	cfg.Username = me.Email
	cfg.Role = me.Role
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "logged in as %s (%s)\n", me.Email, me.Role)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

func readPassword(in io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LoginCmd returns the `waorder login` command.
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the order automation server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunInteractiveLogin(os.Stdin, os.Stdout)
		},
	}
}
