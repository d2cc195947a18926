// Command passwd hashes an admin password for the auth.admin_password_hash setting.
//
//	echo -n 's3cret-pass' | passwd
//	EDU_AUTH_ADMIN_PASSWORD_HASH="$(passwd < password.txt)" server
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edusite/backend/internal/domain/identity"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "passwd: %v\n", err)
		os.Exit(1)
	}
}

// run reads the password from the first line of stdin, or from -password, and prints its hash
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	password := fs.String("password", "", "Password to hash (read from stdin when empty)")
	envLine := fs.Bool("env", false, "Print an EDU_AUTH_ADMIN_PASSWORD_HASH=... line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *password == "" {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read password: %w", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	hash, err := identity.HashPassword(*password)
	if err != nil {
		return err
	}

	if *envLine {
		_, err = fmt.Fprintf(stdout, "EDU_AUTH_ADMIN_PASSWORD_HASH=%s\n", hash)
		return err
	}
	_, err = fmt.Fprintln(stdout, hash)
	return err
}
