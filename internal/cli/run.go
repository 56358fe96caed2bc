package cli

import (
	"context"
	"fmt"
	"io"
	"maps"

	"github.com/spf13/cobra"

	"github.com/ferdiebergado/snaptools/internal/tool"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

type runFlags struct {
	backward bool
	fields   map[string]string
	options  map[string]string
	copy     bool
	paste    bool
}

func getCmdRun(st *State) *cobra.Command {
	var rf runFlags

	runCmd := &cobra.Command{
		Use:   "run <category>/<tool>",
		Short: "Run a tool forward or backward",
		Long: `Run a tool forward (hash, encrypt, encode, sign) or backward (decrypt,
decode, verify a token).

  The text field is read from --field text=..., the clipboard with --paste,
  or standard input. Secret fields left empty are prompted for when
  standard input is a terminal.`,
		Example: `  snaptools run hashing/sha256 -f text=hello
  echo -n secret | snaptools run hashing/bcrypt -o rounds=12
  snaptools run encryption/aes -f text=hello -o key_size=128 --copy
  snaptools run conversion/base64 --backward --paste`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := mount(st, args[0])
			if err != nil {
				return err
			}
			defer ctrl.Close()

			dir := transform.Forward
			schema := ctrl.Tool().Fields
			if rf.backward {
				dir = transform.Backward
				schema = ctrl.Tool().BackwardFields
			}

			fields := make(map[string]string, len(rf.fields)+1)
			maps.Copy(fields, rf.fields)
			if err := fillText(cmd.Context(), st, ctrl, fields, rf.paste); err != nil {
				return err
			}
			if err := promptSecrets(st, schema, fields); err != nil {
				return err
			}

			in := tool.Input{Fields: fields, Options: toOptions(rf.options)}
			out, err := ctrl.Run(cmd.Context(), dir, in)
			if err != nil {
				return err
			}
			if !out.Result.OK {
				return errReported
			}

			fmt.Fprintln(st.Stdout, out.Result.Value)

			if rf.copy {
				ctx, cancel := clipboardContext(cmd.Context(), st)
				defer cancel()
				// A refused clipboard is already notified and leaves the
				// printed output valid.
				_ = ctrl.CopyOutput(ctx)
			}
			return nil
		},
	}

	flags := runCmd.Flags()
	flags.BoolVarP(&rf.backward, "backward", "b", false, "run the reverse transform (decrypt, decode)")
	flags.StringToStringVarP(&rf.fields, "field", "f", nil, "set an input field, `name=value`")
	flags.StringToStringVarP(&rf.options, "option", "o", nil, "set an option such as a cost, `name=value`")
	flags.BoolVar(&rf.copy, "copy", false, "copy the output to the clipboard")
	flags.BoolVar(&rf.paste, "paste", false, "read the text field from the clipboard")

	return runCmd
}

type verifyFlags struct {
	input   string
	digest  string
	fields  map[string]string
	options map[string]string
}

func getCmdVerify(st *State) *cobra.Command {
	var vf verifyFlags

	verifyCmd := &cobra.Command{
		Use:   "verify <category>/<tool>",
		Short: "Check an input against a digest or password hash",
		Long: `Check an input against a digest or password hash.

  Exits with status 1 when the digest does not match. The input is read
  from standard input when --input is not given.`,
		Example: `  snaptools verify hashing/md5 --input test --digest 098f6bcd4621d373cade4e832627b4f6
  snaptools verify hashing/hmac-sha256 -f key=secret --digest ... < message.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := mount(st, args[0])
			if err != nil {
				return err
			}
			defer ctrl.Close()

			if !ctrl.Tool().Verifiable() {
				return fmt.Errorf("%s/%s cannot verify digests", ctrl.Tool().Category, ctrl.Tool().ID)
			}

			input := vf.input
			if input == "" {
				if input, err = readInput(st); err != nil {
					return err
				}
			}

			fields := make(map[string]string, len(vf.fields))
			maps.Copy(fields, vf.fields)
			var secrets []transform.Field
			for _, f := range ctrl.Tool().Fields {
				if f.Name != transform.FieldText {
					secrets = append(secrets, f)
				}
			}
			if err := promptSecrets(st, secrets, fields); err != nil {
				return err
			}

			out, err := ctrl.Verify(cmd.Context(), tool.VerifyInput{
				Input:   input,
				Digest:  vf.digest,
				Fields:  fields,
				Options: toOptions(vf.options),
			})
			if err != nil {
				return err
			}
			if !out.Result.OK {
				return errReported
			}

			fmt.Fprintln(st.Stdout, out.Result.Value)
			if out.Result.Value != tool.Match {
				return errReported
			}
			return nil
		},
	}

	flags := verifyCmd.Flags()
	flags.StringVarP(&vf.input, "input", "i", "", "the text to check")
	flags.StringVarP(&vf.digest, "digest", "d", "", "the expected digest or hash")
	flags.StringToStringVarP(&vf.fields, "field", "f", nil, "set an input field, `name=value`")
	flags.StringToStringVarP(&vf.options, "option", "o", nil, "set an option, `name=value`")

	return verifyCmd
}

func mount(st *State, ref string) (*tool.Controller, error) {
	category, id, err := parseRef(ref)
	if err != nil {
		return nil, err
	}

	t, err := st.Service.Tool(category, id)
	if err != nil {
		return nil, err
	}
	return tool.NewController(st.Service, t, st.Notifier, st.Clipboard), nil
}

// fillText sets the text field from the clipboard or from a piped stdin
// unless it was given on the command line.
func fillText(ctx context.Context, st *State, ctrl *tool.Controller, fields map[string]string, paste bool) error {
	if _, ok := fields[transform.FieldText]; ok {
		return nil
	}

	if paste {
		ctx, cancel := clipboardContext(ctx, st)
		defer cancel()

		text, err := ctrl.Paste(ctx)
		if err != nil {
			return errReported
		}
		fields[transform.FieldText] = text
		return nil
	}

	if st.StdinTTY {
		return nil
	}

	text, err := readStdin(st)
	if err != nil {
		return err
	}
	fields[transform.FieldText] = text
	return nil
}

// readInput prompts for the verification input on a terminal and reads
// piped stdin otherwise.
func readInput(st *State) (string, error) {
	if !st.StdinTTY {
		return readStdin(st)
	}
	if st.ReadSecret == nil {
		return "", nil
	}

	fmt.Fprint(st.Stderr, "Input: ")
	input, err := st.ReadSecret()
	fmt.Fprintln(st.Stderr)
	return input, err
}

func readStdin(st *State) (string, error) {
	b, err := io.ReadAll(st.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return trimNewline(string(b)), nil
}

// promptSecrets asks for every required secret field that is still empty.
// Nothing is prompted when stdin is not a terminal.
func promptSecrets(st *State, schema []transform.Field, fields map[string]string) error {
	if !st.StdinTTY || st.ReadSecret == nil {
		return nil
	}

	for _, f := range schema {
		if f.Input != transform.InputSecret || !f.Required || fields[f.Name] != "" {
			continue
		}

		fmt.Fprintf(st.Stderr, "%s: ", f.Label)
		secret, err := st.ReadSecret()
		fmt.Fprintln(st.Stderr)
		if err != nil {
			return err
		}
		fields[f.Name] = secret
	}
	return nil
}

// toOptions relies on the weakly typed decoding of the checker to turn
// numeric strings into integers.
func toOptions(opts map[string]string) map[string]any {
	if len(opts) == 0 {
		return nil
	}

	out := make(map[string]any, len(opts))
	for k, v := range opts {
		out[k] = v
	}
	return out
}

func clipboardContext(ctx context.Context, st *State) (context.Context, context.CancelFunc) {
	if st.ClipboardTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, st.ClipboardTimeout)
}
