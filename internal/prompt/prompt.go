// Package prompt reads interactive input from the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"
)

const MinPasswordLen = 8

var ErrNotATerminal = errors.New("stdin is not a terminal")

// LineWithDefault reads one line from in, returning def on empty input or
// read errors.
func LineWithDefault(in io.Reader, out io.Writer, label, def string) string {
	if def != "" {
		_, _ = fmt.Fprintf(out, "%s [%s]: ", label, def)
	} else {
		_, _ = fmt.Fprintf(out, "%s: ", label)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return def
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// Secret reads one line from the terminal without echo.
func Secret(label string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotATerminal
	}

	_, _ = fmt.Fprint(os.Stderr, label)
	b, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		ZeroBytes(b)
		return nil, errors.Wrap(err, "input failed")
	}
	return b, nil
}

// Password reads and validates a password. Callers own the returned buffer
// and should ZeroBytes it.
func Password(label string) ([]byte, error) {
	pw, err := Secret(label)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(pw); err != nil {
		ZeroBytes(pw)
		return nil, err
	}
	return pw, nil
}

// NewPassword asks twice and requires both entries to match.
func NewPassword(label string) ([]byte, error) {
	pw, err := Password(label)
	if err != nil {
		return nil, err
	}
	again, err := Password("Repeat " + strings.ToLower(label[:1]) + label[1:])
	if err != nil {
		ZeroBytes(pw)
		return nil, err
	}
	defer ZeroBytes(again)

	if string(pw) != string(again) {
		ZeroBytes(pw)
		return nil, errors.New("passwords do not match")
	}
	return pw, nil
}

func ValidatePassword(pw []byte) error {
	if len(pw) < MinPasswordLen {
		return errors.Newf("password must be at least %d characters long", MinPasswordLen)
	}
	for _, b := range pw {
		if !IsAllowedPasswordChar(b) {
			return errors.New("password contains invalid characters (use letters, numbers, and special characters only)")
		}
	}
	return nil
}

// IsAllowedPasswordChar accepts printable ASCII except space.
func IsAllowedPasswordChar(b byte) bool {
	return b > ' ' && b <= '~'
}

// InfuraAPIKey loops until a 32 character hex key is entered.
func InfuraAPIKey(in io.Reader, out io.Writer) (string, error) {
	_, _ = fmt.Fprintln(out, "\n=== Ethereum RPC Provider Setup ===")
	_, _ = fmt.Fprintln(out, "Create a free Infura API key at https://www.infura.io/register")

	r := bufio.NewReader(in)
	for {
		key := LineWithDefault(r, out, "Enter your Infura API Key", "")
		if key == "" {
			if _, err := r.Peek(1); err != nil {
				return "", errors.Wrap(err, "read infura api key")
			}
			_, _ = fmt.Fprintln(out, "Infura API key cannot be empty.")
			continue
		}
		if err := ValidateInfuraKey(key); err != nil {
			_, _ = fmt.Fprintln(out, err.Error())
			continue
		}
		return key, nil
	}
}

func ValidateInfuraKey(key string) error {
	if len(key) != 32 {
		return errors.New("invalid Infura API key length, expected 32 hexadecimal characters")
	}
	if !isHexString(key) {
		return errors.New("invalid Infura API key format, only hexadecimal characters are allowed")
	}
	return nil
}

func isHexString(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
