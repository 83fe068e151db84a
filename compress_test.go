package rpmmacro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestClassifyCompressionMagicBytes(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want compressionKind
	}{
		{"a.gz", []byte{0x1f, 0x8b, 0x08, 0x00}, compressedOther},
		{"a.bz2", []byte("BZh91AY&SY"), compressedBzip2},
		{"a.zip", []byte{0x50, 0x4b, 0x03, 0x04, 0x14, 0x00}, compressedZip},
		{"a.7z", []byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c, 0x00, 0x03}, compressed7zip},
		{"a.lz", []byte("LZIP\x01"), compressedLzip},
		{"a.lrz", []byte("LRZI\x00\x00"), compressedLrzip},
	}
	for _, c := range cases {
		path := writeTempFile(t, c.name, c.data)
		require.Equalf(t, c.want, classifyCompression(path), "classifying %s", c.name)
	}
}

func TestClassifyCompressionXZRejectsBadHeader(t *testing.T) {
	// Starts with the real xz 6-byte stream magic but the rest isn't a
	// valid xz stream header, so the decoder must reject it rather than
	// rubber-stamping anything with the right prefix as xz.
	path := writeTempFile(t, "fake.xz", []byte{0xfd, '7', 'z', 'X', 'Z', 0x00, 0xff, 0xff, 0xff, 0xff})
	require.NotEqual(t, compressedXZ, classifyCompression(path))
}

func TestClassifyCompressionPlainTextIsNotCompressed(t *testing.T) {
	path := writeTempFile(t, "plain.txt", []byte("hello, this is just text\n"))
	require.Equal(t, compressedNot, classifyCompression(path))
}

func TestClassifyCompressionUnknownBinaryDefaultsToGzip(t *testing.T) {
	// Bytes that are neither a recognized magic number nor plausible text
	// (high bit set, no known signature) must default to gzip, not to
	// "not compressed".
	path := writeTempFile(t, "mystery.bin", []byte{0x01, 0x02, 0x03, 0xff, 0xfe, 0x80, 0x81})
	require.Equal(t, compressedOther, classifyCompression(path))
}

func TestClassifyCompressionUnreadableDefaultsToGzip(t *testing.T) {
	require.Equal(t, compressedOther, classifyCompression(filepath.Join(t.TempDir(), "does-not-exist")))
}

func TestUncompressCommandMapping(t *testing.T) {
	textPath := writeTempFile(t, "plain.txt", []byte("plain text\n"))
	gzPath := writeTempFile(t, "a.gz", []byte{0x1f, 0x8b})
	bz2Path := writeTempFile(t, "a.bz2", []byte("BZh1"))

	require.Equal(t, "%__cat "+textPath, uncompressCommand(textPath))
	require.Equal(t, "%__gzip -dc "+gzPath, uncompressCommand(gzPath))
	require.Equal(t, "%__bzip2 -dc "+bz2Path, uncompressCommand(bz2Path))
}
