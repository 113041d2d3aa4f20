package fx

import (
	"encoding/binary"

	"github.com/zeusync/fxnet/pkg/encoding"
)

// RawSize is the length of the persisted form: the raw value, little-endian.
const RawSize = 8

var _ encoding.Serializable[Num] = (*Num)(nil)

func (n Num) MarshalText() ([]byte, error) {
	return n.AppendFormat(nil), nil
}

func (n *Num) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func (n Num) MarshalBinary() ([]byte, error) {
	return binary.LittleEndian.AppendUint64(make([]byte, 0, RawSize), uint64(n.raw)), nil
}

func (n *Num) UnmarshalBinary(data []byte) error {
	if len(data) < RawSize {
		return ErrShortBuffer
	}
	n.raw = int64(binary.LittleEndian.Uint64(data))
	return nil
}

func (n Num) Serialize() ([]byte, error) { return n.MarshalBinary() }

func (n *Num) Deserialize(data []byte) error { return n.UnmarshalBinary(data) }
