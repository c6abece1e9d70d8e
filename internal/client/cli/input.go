package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetSecret prompts for a secret and reads it from the terminal without
// echo. A newline is printed after the read to keep the UI tidy.
func GetSecret(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

// GetOptionalText reads one field value; an empty line means "leave unset".
func GetOptionalText(reader *bufio.Reader, label string, w io.Writer) (*string, error) {
	s, err := GetSimpleText(reader, label+" (empty to skip)", w)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

// GetOptionalInt reads an optional integer field. Invalid input is reported
// so the caller can re-prompt or abort; empty input means "leave unset".
func GetOptionalInt(reader *bufio.Reader, label string, w io.Writer) (*int64, error) {
	s, err := GetOptionalText(reader, label, w)
	if err != nil || s == nil {
		return nil, err
	}
	n, err := strconv.ParseInt(*s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: not a whole number: %q", label, *s)
	}
	return &n, nil
}

// GetOptionalDecimal reads an optional decimal field (prices, dioptres).
func GetOptionalDecimal(reader *bufio.Reader, label string, w io.Writer) (*decimal.Decimal, error) {
	s, err := GetOptionalText(reader, label, w)
	if err != nil || s == nil {
		return nil, err
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("%s: not a number: %q", label, *s)
	}
	return &d, nil
}
