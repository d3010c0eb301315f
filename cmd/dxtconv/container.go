package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/texelcomp/dxtimage"
)

// This tool's own minimal on-disk layout for a compressed block image:
// not DDS or KTX (both explicitly out of this library's scope), just
// enough of a header for dxtconv to round-trip what it produces. Magic
// "DXTC", then u8 format tag, u32 width, u32 height, then the raw
// element buffer (little-endian u64 per element).
const magic = "DXTC"

func writeDXTFile(path string, img *dxtimage.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.WriteString(f, magic); err != nil {
		return err
	}
	header := []byte{byte(img.Format())}
	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(img.Width())); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(img.Height())); err != nil {
		return err
	}
	for _, e := range img.Elements() {
		if err := binary.Write(f, binary.LittleEndian, uint64(e)); err != nil {
			return err
		}
	}
	return nil
}

func readDXTFile(path string) (*dxtimage.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gotMagic := make([]byte, len(magic))
	if _, err := io.ReadFull(f, gotMagic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(gotMagic) != magic {
		return nil, fmt.Errorf("not a dxtconv file (bad magic %q)", gotMagic)
	}

	var formatByte uint8
	if err := binary.Read(f, binary.LittleEndian, &formatByte); err != nil {
		return nil, fmt.Errorf("reading format: %w", err)
	}
	format := dxtimage.Format(formatByte)

	var width, height uint32
	if err := binary.Read(f, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("reading width: %w", err)
	}
	if err := binary.Read(f, binary.LittleEndian, &height); err != nil {
		return nil, fmt.Errorf("reading height: %w", err)
	}

	rest, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading element buffer: %w", err)
	}
	if len(rest)%8 != 0 {
		return nil, fmt.Errorf("element buffer length %d is not a multiple of 8", len(rest))
	}
	elements := make([]dxtimage.Element, len(rest)/8)
	for i := range elements {
		elements[i] = dxtimage.Element(binary.LittleEndian.Uint64(rest[i*8:]))
	}

	return dxtimage.NewImageFromElements(format, int(width), int(height), elements)
}
