package keyring

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// rdfTimeLayout renders timestamps in ISO-8601 (spec.md §4.5).
const rdfTimeLayout = time.RFC3339

// WriteProperties renders path's keyring as an RDF/XML fragment onto w: one
// <keyring:Keyring> element describing the file itself, followed by one
// <keyring:Key> element per record, each naming its nonce, timestamp, and
// the protocol version it was written with (spec.md §4.5, grounded on the
// original toolkit's RDF property listing).
func WriteProperties(path string, w io.Writer) error {
	k, err := Acquire(path)
	if err != nil {
		return err
	}
	records, err := k.List()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "  <keyring:Keyring rdf:about=%q>\n", path)
	fmt.Fprintf(w, "    <keyring:timestamp>%s</keyring:timestamp>\n", time.Now().UTC().Format(rdfTimeLayout))
	fmt.Fprintf(w, "  </keyring:Keyring>\n")

	for _, rec := range records {
		fmt.Fprintf(w, "  <keyring:Key rdf:about=%q>\n", hex.EncodeToString(rec.ID))
		fmt.Fprintf(w, "    <keyring:memberOf rdf:resource=%q/>\n", path)
		fmt.Fprintf(w, "    <keyring:nonce>%s</keyring:nonce>\n", hex.EncodeToString(rec.Nonce))
		fmt.Fprintf(w, "    <keyring:timestamp>%s</keyring:timestamp>\n", rec.Timestamp.Format(rdfTimeLayout))
		fmt.Fprintf(w, "    <keyring:protocol>%d.%d</keyring:protocol>\n", rec.VersionMajor, rec.VersionMinor)
		fmt.Fprintf(w, "  </keyring:Key>\n")
	}
	return nil
}
