package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"wizardtoolkit/hashkit"
)

var hashKindFlag string
var hashInFlag string

func init() {
	hashCmd.Flags().StringVar(&hashKindFlag, "kind", "sha256", "digest algorithm: crc64, md5, sha1, sha224, sha256, sha384, sha512, sponge224, sponge256, sponge384, sponge512, sponge288")
	hashCmd.Flags().StringVar(&hashInFlag, "in", "-", "input path, or - for stdin")
	rootCmd.AddCommand(hashCmd)
}

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Compute a streaming digest over a file or stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseHashKind(hashKindFlag)
		if err != nil {
			return err
		}
		in, closeIn, err := openInput(hashInFlag)
		if err != nil {
			return err
		}
		defer closeIn()

		env, err := hashkit.Acquire(kind)
		if err != nil {
			return err
		}
		buf := make([]byte, 64*1024)
		for {
			n, rerr := in.Read(buf)
			if n > 0 {
				env.Update(buf[:n])
			}
			if rerr == io.EOF {
				break
			}
			if rerr != nil {
				return rerr
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), env.HexDigest())
		return nil
	},
}

func parseHashKind(s string) (hashkit.Kind, error) {
	switch s {
	case "crc64":
		return hashkit.KindCRC64, nil
	case "md5":
		return hashkit.KindMD5, nil
	case "sha1":
		return hashkit.KindSHA1, nil
	case "sha224":
		return hashkit.KindSHA224, nil
	case "sha256":
		return hashkit.KindSHA256, nil
	case "sha384":
		return hashkit.KindSHA384, nil
	case "sha512":
		return hashkit.KindSHA512, nil
	case "sponge224":
		return hashkit.KindSponge224, nil
	case "sponge256":
		return hashkit.KindSponge256, nil
	case "sponge384":
		return hashkit.KindSponge384, nil
	case "sponge512":
		return hashkit.KindSponge512, nil
	case "sponge288":
		return hashkit.KindSponge128Wide, nil
	default:
		return 0, fmt.Errorf("unknown hash kind %q", s)
	}
}
