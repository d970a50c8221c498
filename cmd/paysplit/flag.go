package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/orm"
)

// flAddress returns a value that is being initialized with given default
// value and optionally overwritten by a command line argument if provided.
// This function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *paysplit.Address {
	var a paysplit.Address
	if defaultVal != "" {
		var err error
		a, err = paysplit.ParseAddress(defaultVal)
		if err != nil {
			flagDie("Cannot parse %q address flag value. %s", name, err)
		}
	}
	fl.Var((*flagaddr)(&a), name, usage)
	return &a
}

type flagaddr paysplit.Address

func (a flagaddr) String() string {
	return paysplit.Address(a).String()
}

func (a *flagaddr) Set(raw string) error {
	val, err := paysplit.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = flagaddr(val)
	return nil
}

// flSeq returns a sequence ID flag. The value is given in decimal form and
// encoded the way the orm package does it.
func flSeq(fl *flag.FlagSet, name, usage string) *[]byte {
	var b []byte
	fl.Var((*flagseq)(&b), name, usage)
	return &b
}

type flagseq []byte

func (s flagseq) String() string {
	if len(s) == 0 {
		return ""
	}
	return orm.FormatSequence(s)
}

func (s *flagseq) Set(raw string) error {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("sequence must be positive")
	}
	*s = orm.EncodeSequence(n)
	return nil
}

// flagDie terminates the program when a flag is invalid. This function must
// be called only by the command argument parsing code.
func flagDie(description string, args ...interface{}) {
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	fmt.Fprintln(os.Stderr, description)
	os.Exit(2)
}
