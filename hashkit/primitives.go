package hashkit

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"hash/crc64"
)

// newCRC64 is the 64-bit CRC core (Primitive H-CRC64): reflected, generator
// polynomial 0xd800000000000000, which is exactly hash/crc64's ISO table —
// the idiomatic stdlib choice; see DESIGN.md.
func newCRC64() hash.Hash {
	return crc64.New(crc64.MakeTable(crc64.ISO))
}

// newMD5 is H-MD5 (RFC 1321), block size 64, digest size 16.
func newMD5() hash.Hash { return md5.New() }

// newSHA1 is H-SHA1, block size 64, digest size 20.
func newSHA1() hash.Hash { return sha1.New() }

// newSHA224 is H-SHA2/224: SHA-256 with alternative initial hash values
// and truncated output.
func newSHA224() hash.Hash { return sha256.New224() }

// newSHA256 is H-SHA2/256 (FIPS 180-4).
func newSHA256() hash.Hash { return sha256.New() }

// newSHA384 is H-SHA2/384: SHA-512 with alternative initial hash values
// and truncated output.
func newSHA384() hash.Hash { return sha512.New384() }

// newSHA512 is H-SHA2/512, block size 128, digest size 64, 80 rounds.
func newSHA512() hash.Hash { return sha512.New() }
