package shortvec

import (
	"errors"
	"math"
	"testing"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type ShortvecSuite struct{}

var _ = Suite(&ShortvecSuite{})

var lengthTests = []struct {
	value   int
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{5, []byte{0x05}},
	{0x7f, []byte{0x7f}},
	{0x80, []byte{0x80, 0x01}},
	{0xff, []byte{0xff, 0x01}},
	{0x100, []byte{0x80, 0x02}},
	{0x3fff, []byte{0xff, 0x7f}},
	{0x4000, []byte{0x80, 0x80, 0x01}},
	{0x7fff, []byte{0xff, 0xff, 0x01}},
	{0xffff, []byte{0xff, 0xff, 0x03}},
	{0x200000, []byte{0x80, 0x80, 0x80, 0x01}},
}

func (s *ShortvecSuite) TestEncodeLength(c *C) {
	for _, test := range lengthTests {
		c.Check(EncodeLength(test.value), DeepEquals, test.encoded, Commentf("value %d", test.value))
		c.Check(EncodedSize(test.value), Equals, len(test.encoded), Commentf("value %d", test.value))
	}
}

func (s *ShortvecSuite) TestDecodeLength(c *C) {
	for _, test := range lengthTests {
		value, offset, err := DecodeLength(test.encoded, 0)
		c.Assert(err, IsNil, Commentf("value %d", test.value))
		c.Check(value, Equals, test.value)
		c.Check(offset, Equals, len(test.encoded))
	}
}

func (s *ShortvecSuite) TestBoundarySizes(c *C) {
	sizes := map[int]int{0: 1, 127: 1, 128: 2, 16383: 2, 16384: 3}
	for value, size := range sizes {
		encoded := EncodeLength(value)
		c.Check(len(encoded), Equals, size, Commentf("value %d", value))
		decoded, _, err := DecodeLength(encoded, 0)
		c.Assert(err, IsNil)
		c.Check(decoded, Equals, value)
	}
}

func (s *ShortvecSuite) TestDecodeAtOffset(c *C) {
	data := append([]byte{0xaa, 0xbb}, EncodeLength(300)...)
	data = append(data, 0xcc)
	value, offset, err := DecodeLength(data, 2)
	c.Assert(err, IsNil)
	c.Check(value, Equals, 300)
	c.Check(offset, Equals, 4)
	c.Check(data[offset], Equals, byte(0xcc))
}

func (s *ShortvecSuite) TestAppendLength(c *C) {
	buf := AppendLength([]byte{0x01}, 0x80)
	c.Check(buf, DeepEquals, []byte{0x01, 0x80, 0x01})
}

func (s *ShortvecSuite) TestMaxInt(c *C) {
	encoded := EncodeLength(math.MaxInt)
	value, _, err := DecodeLength(encoded, 0)
	c.Assert(err, IsNil)
	c.Check(value, Equals, math.MaxInt)
}

func (s *ShortvecSuite) TestMalformed(c *C) {
	bad := [][]byte{
		{},
		{0x80},
		{0xff, 0xff},
		{0x80, 0x00},
		{0xff, 0x80, 0x00},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
	}
	for _, data := range bad {
		_, offset, err := DecodeLength(data, 0)
		c.Check(errors.Is(err, ErrMalformedLength), Equals, true, Commentf("input %x", data))
		c.Check(offset, Equals, 0)
	}
}

func (s *ShortvecSuite) TestOffsetOutOfRange(c *C) {
	_, _, err := DecodeLength([]byte{0x01}, 2)
	c.Check(errors.Is(err, ErrMalformedLength), Equals, true)
}

func (s *ShortvecSuite) TestNegativePanics(c *C) {
	c.Check(func() { EncodeLength(-1) }, PanicMatches, "shortvec: negative length -1")
}
