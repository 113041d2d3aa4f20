package encoding

// Serializable provides a clean, simple interface for serializing and deserializing values.
// Implementations use a fixed little-endian layout so bytes compare equal across machines.
type Serializable[T any] interface {
	Serialize() ([]byte, error)
	Deserialize([]byte) error
}

// Append serializes each value in order and appends the bytes to dst.
func Append[T any](dst []byte, values ...Serializable[T]) ([]byte, error) {
	for _, v := range values {
		b, err := v.Serialize()
		if err != nil {
			return dst, err
		}
		dst = append(dst, b...)
	}
	return dst, nil
}
