package common

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// FileExist checks if a file exists at filePath.
func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	if err != nil && os.IsNotExist(err) {
		return false
	}
	return true
}

// CurrentDir get current dir
func CurrentDir() (string, error) {
	return filepath.Abs(filepath.Dir(os.Args[0]))
}

// AbsolutePath returns datadir + filename, or filename if it is absolute.
func AbsolutePath(datadir, filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(datadir, filename)
}

// Has0xPrefix validates str begins with '0x' or '0X'.
func Has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}

// FromHex returns the bytes represented by the hexadecimal string s.
// s may be prefixed with "0x".
func FromHex(s string) []byte {
	if Has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	h, _ := hex.DecodeString(s)
	return h
}

// StorageSize is a wrapper around a float value that supports user friendly
// formatting.
type StorageSize float64

// String implements the stringer interface.
func (s StorageSize) String() string {
	switch {
	case s > 1099511627776:
		return fmt.Sprintf("%.2f TiB", s/1099511627776)
	case s > 1073741824:
		return fmt.Sprintf("%.2f GiB", s/1073741824)
	case s > 1048576:
		return fmt.Sprintf("%.2f MiB", s/1048576)
	case s > 1024:
		return fmt.Sprintf("%.2f KiB", s/1024)
	default:
		return fmt.Sprintf("%.2f B", s)
	}
}

// Now returns timestamp of the point of calling.
func Now() int64 {
	return time.Now().Unix()
}

// NowStr returns now timestamp of string format.
func NowStr() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}
