package tracked

import "bytes"

const pathDelimiterByteConstant = byte(0)

// DecodeTrackedPaths splits NUL-delimited listing output into path names.
// Empty entries are dropped. Bytes that are not valid UTF-8 are preserved verbatim.
func DecodeTrackedPaths(rawListing []byte) []string {
	entries := bytes.Split(rawListing, []byte{pathDelimiterByteConstant})
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if len(entry) == 0 {
			continue
		}
		paths = append(paths, string(entry))
	}
	return paths
}
