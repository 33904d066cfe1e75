package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PromptYesNo asks question on stdout and reads the answer from stdin
func PromptYesNo(question string) bool {
	return PromptYesNoFrom(os.Stdin, os.Stdout, question)
}

// PromptYesNoFrom asks question on w until r yields y/yes or n/no.
// End of input counts as "no" so a closed stdin never confirms a destructive action.
func PromptYesNoFrom(r io.Reader, w io.Writer, question string) bool {
	reader := bufio.NewReader(r)
	for {
		fmt.Fprintf(w, "%s (y/n): ", question)
		response, err := reader.ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))

		switch response {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}

		if err != nil {
			fmt.Fprintln(w)
			return false
		}
		fmt.Fprintln(w, "Please enter y or n")
	}
}
