package link

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// MaxDataSize is the capacity of the data section of a compiled file.
const MaxDataSize = 2 * 1024 * 1024

// StoreString adds a NUL-terminated string to the data section and returns
// its offset. The text is stored in the Windows-1252 code page.
func (u *Unit) StoreString(s string) (int, error) {
	u.checkOpen()
	if u.opts.SharedStrings {
		if off, ok := u.strings[s]; ok {
			return off, nil
		}
	}
	raw, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil {
		return 0, fmt.Errorf("string %q cannot be encoded in Windows-1252", s)
	}
	off, err := u.AppendData([]byte(raw))
	if err != nil {
		return 0, err
	}
	if _, ok := u.strings[s]; !ok {
		u.strings[s] = off
	}
	return off, nil
}

// AppendData adds raw bytes followed by a NUL terminator to the data
// section and returns their offset.
func (u *Unit) AppendData(raw []byte) (int, error) {
	u.checkOpen()
	if len(u.data)+len(raw)+1 > MaxDataSize {
		return 0, fmt.Errorf("Data exceeds %d bytes limit", MaxDataSize)
	}
	off := len(u.data)
	u.data = append(u.data, raw...)
	u.data = append(u.data, 0)
	return off, nil
}

// Data returns the data section built so far.
func (u *Unit) Data() []byte {
	return u.data
}
