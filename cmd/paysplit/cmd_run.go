package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"reflect"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/app"
	pslapp "github.com/iov-one/paysplit/cmd/paysplit/app"
	"github.com/iov-one/paysplit/orm"
	"github.com/iov-one/paysplit/x/cash"
	"github.com/iov-one/paysplit/x/distribution"
	"github.com/iov-one/paysplit/x/sigs"
	"github.com/iov-one/paysplit/x/token"
)

// Step is a single instruction of a script. It either delivers a message or
// commits the current block.
type Step struct {
	// Signer is the path to the private key file signing the message.
	// Leave empty to deliver an unsigned transaction.
	Signer string `json:"signer"`
	// Path selects the message type.
	Path string `json:"path"`
	// Splitter is the numeric ID of the splitter the message refers to.
	Splitter int64 `json:"splitter"`
	// Msg is the message content, decoded into the type selected by
	// the path.
	Msg json.RawMessage `json:"msg"`
	// Commit closes the current block.
	Commit bool `json:"commit"`
}

// messages maps a message path to a message prototype.
var messages = msgRegistry(
	&cash.SendMsg{},
	&token.TransferMsg{},
	&sigs.BumpSequenceMsg{},
	&distribution.CreateMsg{},
	&distribution.DepositMsg{},
	&distribution.DistributeMsg{},
	&distribution.DistributeWithRetryMsg{},
	&distribution.DistributeTokenMsg{},
	&distribution.DistributeTokensMsg{},
)

func msgRegistry(protos ...paysplit.Msg) map[string]reflect.Type {
	r := make(map[string]reflect.Type, len(protos))
	for _, p := range protos {
		r[p.Path()] = reflect.TypeOf(p).Elem()
	}
	return r
}

func cmdRun(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Execute a script of messages against the state stored in the home directory.

The script is a JSON list of steps read from the standard input. Each step
delivers a single message, signed by the given key, or commits the block.
The outcome of every step is printed. A failed message does not stop the
script. The block is committed when the script ends.

  [
    {"path": "distribution/create", "msg": {"destinations": [...]}},
    {"signer": "alice.key", "path": "distribution/deposit", "splitter": 1,
     "msg": {"source": "...", "amount": "100"}},
    {"commit": true}
  ]
`)
		fl.PrintDefaults()
	}
	var (
		homeFl  = fl.String("home", defaultHome(), "State directory. You can use PAYSPLIT_HOME environment variable to set it.")
		debugFl = fl.Bool("debug", false, "Log debug information.")
	)
	fl.Parse(args)

	var steps []Step
	if err := json.NewDecoder(input).Decode(&steps); err != nil {
		return fmt.Errorf("cannot decode script: %s", err)
	}

	kv, e, err := openEngine(*homeFl, *debugFl)
	if err != nil {
		return err
	}
	defer kv.Close()

	if e.ChainID() == "" {
		return fmt.Errorf("state in %q is not initialized", *homeFl)
	}

	for i, step := range steps {
		if step.Commit {
			if err := commit(output, e); err != nil {
				return err
			}
			continue
		}
		tx, err := buildTx(kv, e.ChainID(), step)
		if err != nil {
			return fmt.Errorf("step %d: %s", i, err)
		}
		res, err := e.Deliver(tx)
		if err != nil {
			fmt.Fprintf(output, "%d %s failed: %s\n", i, step.Path, err)
			continue
		}
		printResult(output, i, step.Path, res)
	}
	return commit(output, e)
}

func commit(output io.Writer, e *app.Engine) error {
	id, err := e.Commit()
	if err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	_, err = fmt.Fprintf(output, "commit %d: %X\n", id.Version, id.Hash)
	return err
}

func printResult(output io.Writer, step int, path string, res *paysplit.DeliverResult) {
	fmt.Fprintf(output, "%d %s ok", step, path)
	if res.Log != "" {
		fmt.Fprintf(output, ": %s", res.Log)
	}
	if path == (distribution.CreateMsg{}).Path() && len(res.Data) != 0 {
		fmt.Fprintf(output, ": splitter %s %s", orm.FormatSequence(res.Data), distribution.SplitterAccount(res.Data))
	}
	fmt.Fprintln(output)
	for _, t := range res.Tags {
		fmt.Fprintf(output, "\t%s=%s\n", t.Key, t.Value)
	}
}

// buildTx decodes the step message and signs it with the next sequence of
// the signer.
func buildTx(db paysplit.ReadOnlyKVStore, chainID string, step Step) (*sigs.StdTx, error) {
	msg, err := decodeMsg(step)
	if err != nil {
		return nil, err
	}
	tx := sigs.NewStdTx(msg)
	if step.Signer == "" {
		return tx, nil
	}
	priv, err := readKey(step.Signer)
	if err != nil {
		return nil, err
	}
	seq, err := sigs.NextNonce(db, priv.PublicKey().Address())
	if err != nil {
		return nil, err
	}
	sig, err := sigs.SignTx(priv, tx, chainID, seq)
	if err != nil {
		return nil, fmt.Errorf("cannot sign: %s", err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}
	return tx, nil
}

func decodeMsg(step Step) (paysplit.Msg, error) {
	typ, ok := messages[step.Path]
	if !ok {
		return nil, fmt.Errorf("unknown message path %q", step.Path)
	}
	msg := reflect.New(typ).Interface().(paysplit.Msg)
	if len(step.Msg) != 0 {
		if err := json.Unmarshal(step.Msg, msg); err != nil {
			return nil, fmt.Errorf("cannot decode %s message: %s", step.Path, err)
		}
	}
	if step.Splitter != 0 {
		id := orm.EncodeSequence(step.Splitter)
		switch m := msg.(type) {
		case *distribution.DepositMsg:
			m.SplitterID = id
		case *distribution.DistributeMsg:
			m.SplitterID = id
		case *distribution.DistributeWithRetryMsg:
			m.SplitterID = id
		case *distribution.DistributeTokenMsg:
			m.SplitterID = id
		case *distribution.DistributeTokensMsg:
			m.SplitterID = id
		default:
			return nil, fmt.Errorf("%s message does not refer to a splitter", step.Path)
		}
	}
	return msg, nil
}

func cmdSplitter(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print a splitter and the native balance of its account as JSON.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(), "State directory. You can use PAYSPLIT_HOME environment variable to set it.")
		idFl   = flSeq(fl, "id", "Numeric ID of the splitter.")
	)
	fl.Parse(args)

	if len(*idFl) == 0 {
		flagDie("id is required")
	}

	kv, err := pslapp.CommitKVStore(*homeFl)
	if err != nil {
		return err
	}
	defer kv.Close()

	s, err := distribution.GetSplitter(kv, *idFl)
	if err != nil {
		return err
	}
	balance, err := balanceOf(kv, s.Address, "")
	if err != nil {
		return err
	}
	view := struct {
		*distribution.Splitter
		Balance string `json:"balance"`
	}{Splitter: s, Balance: balance.String()}

	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
