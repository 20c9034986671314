package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"wizardtoolkit/keyring"
)

var keyringPathFlag string

func init() {
	keyringCmd.PersistentFlags().StringVar(&keyringPathFlag, "path", "", "keyring file path (defaults to the per-user keyring.xdm)")
	keyringCmd.AddCommand(keyringImportCmd, keyringExportCmd, keyringListCmd)
	rootCmd.AddCommand(keyringCmd)
}

var keyringCmd = &cobra.Command{
	Use:   "keyring",
	Short: "Manage the per-user keyring file",
}

func resolveKeyringPath() (string, error) {
	if keyringPathFlag != "" {
		return keyringPathFlag, nil
	}
	return defaultKeyringPath()
}

var keyringImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Append a new (id, key, nonce) record to the keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id-hex")
		key, _ := cmd.Flags().GetString("key-hex")
		nonce, _ := cmd.Flags().GetString("nonce-hex")

		idBytes, err := hex.DecodeString(id)
		if err != nil {
			return fmt.Errorf("--id-hex: %w", err)
		}
		keyBytes, err := hex.DecodeString(key)
		if err != nil {
			return fmt.Errorf("--key-hex: %w", err)
		}
		nonceBytes, err := hex.DecodeString(nonce)
		if err != nil {
			return fmt.Errorf("--nonce-hex: %w", err)
		}

		path, err := resolveKeyringPath()
		if err != nil {
			return err
		}
		k, err := keyring.Acquire(path)
		if err != nil {
			return err
		}
		k.SetID(idBytes)
		k.SetKey(keyBytes)
		k.SetNonce(nonceBytes)
		if err := k.Import(); err != nil {
			return err
		}
		slog.Info("imported key", "path", path, "id", id)
		return nil
	},
}

var keyringExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Look up a record by id and print its key and nonce",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id-hex")
		idBytes, err := hex.DecodeString(id)
		if err != nil {
			return fmt.Errorf("--id-hex: %w", err)
		}
		path, err := resolveKeyringPath()
		if err != nil {
			return err
		}
		k, err := keyring.Acquire(path)
		if err != nil {
			return err
		}
		rec, err := k.Export(idBytes)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "key=%s nonce=%s timestamp=%s version=%d.%d\n",
			hex.EncodeToString(rec.Key), hex.EncodeToString(rec.Nonce),
			rec.Timestamp.Format("2006-01-02T15:04:05Z"), rec.VersionMajor, rec.VersionMinor)
		return nil
	},
}

var keyringListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print an RDF listing of the keyring and its records",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveKeyringPath()
		if err != nil {
			return err
		}
		return keyring.WriteProperties(path, os.Stdout)
	},
}

func init() {
	keyringImportCmd.Flags().String("id-hex", "", "key identifier, hex-encoded (required)")
	keyringImportCmd.Flags().String("key-hex", "", "key material, hex-encoded (required)")
	keyringImportCmd.Flags().String("nonce-hex", "", "nonce, hex-encoded (required)")
	_ = keyringImportCmd.MarkFlagRequired("id-hex")
	_ = keyringImportCmd.MarkFlagRequired("key-hex")
	_ = keyringImportCmd.MarkFlagRequired("nonce-hex")

	keyringExportCmd.Flags().String("id-hex", "", "key identifier, hex-encoded (required)")
	_ = keyringExportCmd.MarkFlagRequired("id-hex")
}
