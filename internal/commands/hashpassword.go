package commands

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klabast/wb-services/holiday-calendar/internal/app"
	"golang.org/x/term"
)

// HashPassword handles the hash-password subcommand
func HashPassword(args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	overwrite := fs.Bool("overwrite", false, "Overwrite existing auth file without asking")
	insecureUnmask := fs.Bool("insecure-unmask-password", false, "Show password as plain text (INSECURE!)")
	authFile := fs.String("file", os.Getenv("AUTH_FILE"), "Path to auth file (default: auth.secret next to the binary)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: holiday-calendar hash-password [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates an auth file with a hashed password (Argon2id) protecting the admin routes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	stdin := bufio.NewReader(os.Stdin)
	username, err := prompt(stdin, "Enter username: ")
	if err != nil {
		return fmt.Errorf("error reading username: %w", err)
	}
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	readPassword := func(label string) (string, error) {
		if *insecureUnmask {
			return prompt(stdin, label)
		}
		return readPasswordWithMask(label)
	}
	if *insecureUnmask {
		fmt.Fprintf(os.Stderr, "⚠️  WARNING: Password will be visible on screen!\n")
	}
	password, err := readPassword("Enter password:   ")
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("error reading password confirmation: %w", err)
	}

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	return app.CreateAuthFile(*authFile, username, password, *overwrite, stdin)
}

func prompt(r *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPasswordWithMask reads a password in raw mode and echoes asterisks
func readPasswordWithMask(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Not a terminal: fall back to hidden input
		password, err := term.ReadPassword(fd)
		fmt.Println()
		return string(password), err
	}
	defer term.Restore(fd, oldState)

	var password []byte
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			break
		}
		switch c := buf[0]; c {
		case '\n', '\r':
			fmt.Print("\r\n")
			return string(password), nil
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Print("\b \b")
			}
		case 3: // Ctrl+C
			fmt.Print("\r\n")
			return "", fmt.Errorf("interrupted")
		default:
			if c >= 32 && c <= 126 {
				password = append(password, c)
				fmt.Print("*")
			}
		}
	}
	fmt.Print("\r\n")
	return string(password), nil
}
