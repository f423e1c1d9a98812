// Package prompt implements the interactive confirmation asked before a
// release is cut.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirm asks the user a yes/no question on the terminal. The default
// answer (empty input) is no.
func Confirm(question string) (bool, error) {
	return confirm(os.Stdin, os.Stdout, question)
}

func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprintf(out, "%s [y/N]: ", question); err != nil {
			return false, err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return false, err
			}
			// EOF counts as no answer.
			return false, nil
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
	}
}
