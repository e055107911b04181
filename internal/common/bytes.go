package common

// WipeBytes overwrites the contents of the provided byte slice with zeros.
// Used to remove key material from memory once it is no longer needed.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
