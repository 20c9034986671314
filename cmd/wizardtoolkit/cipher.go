package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"wizardtoolkit/buffer"
	"wizardtoolkit/cipherkit"
)

var (
	cipherKindFlag string
	cipherModeFlag string
	cipherKeyFlag  string
	cipherInFlag   string
	cipherOutFlag  string
)

func init() {
	for _, c := range []*cobra.Command{encipherCmd, decipherCmd} {
		c.Flags().StringVar(&cipherKindFlag, "kind", "aes", "block primitive: aes, serpent32, twofish, arx")
		c.Flags().StringVar(&cipherModeFlag, "mode", "ctr", "mode of operation: ecb, cbc, cfb, ofb, ctr")
		c.Flags().StringVar(&cipherKeyFlag, "key-hex", "", "key material, hex-encoded (required)")
		c.Flags().StringVar(&cipherInFlag, "in", "-", "input path, or - for stdin")
		c.Flags().StringVar(&cipherOutFlag, "out", "-", "output path, or - for stdout")
		_ = c.MarkFlagRequired("key-hex")
	}
	rootCmd.AddCommand(encipherCmd, decipherCmd)
}

var encipherCmd = &cobra.Command{
	Use:   "encipher",
	Short: "Encipher a file or stream, writing the nonce ahead of the ciphertext",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(true)
	},
}

var decipherCmd = &cobra.Command{
	Use:   "decipher",
	Short: "Decipher a file or stream produced by encipher",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(false)
	},
}

func parseCipherKind(s string) (cipherkit.Kind, error) {
	switch s {
	case "aes":
		return cipherkit.KindAES, nil
	case "serpent32":
		return cipherkit.KindSerpent32, nil
	case "twofish":
		return cipherkit.KindTwofish, nil
	case "arx":
		return cipherkit.KindARX, nil
	default:
		return 0, fmt.Errorf("unknown cipher kind %q", s)
	}
}

func parseCipherMode(s string) (cipherkit.Mode, error) {
	switch s {
	case "ecb":
		return cipherkit.ECB, nil
	case "cbc":
		return cipherkit.CBC, nil
	case "cfb":
		return cipherkit.CFB, nil
	case "ofb":
		return cipherkit.OFB, nil
	case "ctr":
		return cipherkit.CTR, nil
	default:
		return 0, fmt.Errorf("unknown cipher mode %q", s)
	}
}

func runCipher(encipher bool) error {
	kind, err := parseCipherKind(cipherKindFlag)
	if err != nil {
		return err
	}
	mode, err := parseCipherMode(cipherModeFlag)
	if err != nil {
		return err
	}
	keyBuf, err := buffer.FromHex(cipherKeyFlag)
	if err != nil {
		return fmt.Errorf("--key-hex: %w", err)
	}

	in, closeIn, err := openInput(cipherInFlag)
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openOutput(cipherOutFlag)
	if err != nil {
		return err
	}
	defer closeOut()

	env, err := cipherkit.Acquire(kind, mode)
	if err != nil {
		return err
	}
	defer env.Wipe()
	if err := env.SetKey(keyBuf.Data); err != nil {
		return err
	}

	if encipher {
		data, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		buf := buffer.FromBytes(data)
		if err := env.Encipher(buf); err != nil {
			return err
		}
		if _, err := out.Write(env.GetNonce()); err != nil {
			return err
		}
		if _, err := out.Write(buf.Data); err != nil {
			return err
		}
		slog.Debug("enciphered", "kind", kind, "mode", mode, "bytes", len(buf.Data))
		return nil
	}

	nonce := make([]byte, env.BlockSize())
	if _, err := io.ReadFull(in, nonce); err != nil {
		return fmt.Errorf("reading nonce prefix: %w", err)
	}
	if err := env.SetNonce(nonce); err != nil {
		return err
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	buf := buffer.FromBytes(data)
	if err := env.Decipher(buf); err != nil {
		return err
	}
	if _, err := out.Write(buf.Data); err != nil {
		return err
	}
	slog.Debug("deciphered", "kind", kind, "mode", mode, "bytes", len(buf.Data))
	return nil
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
