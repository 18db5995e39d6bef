// Command hash-generator prints bcrypt hashes for the given passwords so an
// initial admin account can be seeded directly into the users table.
//
// Usage:
//
//	hash-generator [-cost 12] password [password...]
//	echo -n password | hash-generator
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/AmarWhoo/cookboxd/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if err := run(os.Stdout, os.Stdin, *cost, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out io.Writer, in io.Reader, cost int, passwords []string) error {
	if len(passwords) == 0 {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				passwords = append(passwords, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read passwords: %w", err)
		}
	}
	if len(passwords) == 0 {
		return fmt.Errorf("no passwords given")
	}

	hasher := auth.NewBcryptHasher(cost)
	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
	}
	return nil
}
