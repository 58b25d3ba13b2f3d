package icon

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tc-hib/winres"
)

func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

func assertMostly(t *testing.T, pb *PixelBuffer, x, y int, want color.RGBA) {
	t.Helper()
	got := pb.Image().RGBAAt(x, y)
	diff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	assert.LessOrEqual(t, diff(got.R, want.R), 8, "R at (%d,%d): %v", x, y, got)
	assert.LessOrEqual(t, diff(got.G, want.G), 8, "G at (%d,%d): %v", x, y, got)
	assert.LessOrEqual(t, diff(got.B, want.B), 8, "B at (%d,%d): %v", x, y, got)
	assert.LessOrEqual(t, diff(got.A, want.A), 8, "A at (%d,%d): %v", x, y, got)
}

func TestExtractPNGScalesAndLetterboxes(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "cover.png"), solidPNG(t, 64, 32, red))

	pb, err := NewSystem().Extract(path, 32)
	require.NoError(t, err)
	assert.Equal(t, 32, pb.Size)
	assert.Len(t, pb.Pix, 32*32*4)

	assertMostly(t, pb, 16, 16, red)
	assert.Equal(t, uint8(0), pb.Image().RGBAAt(16, 2).A, "letterbox rows stay transparent")
}

func TestExtractSniffsExtensionlessImage(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "artwork"), solidPNG(t, 16, 16, blue))

	pb, err := NewSystem().Extract(path, 16)
	require.NoError(t, err)
	assertMostly(t, pb, 8, 8, blue)
}

func TestExtractUnavailable(t *testing.T) {
	tmp := t.TempDir()
	file := writeFile(t, filepath.Join(tmp, "game.exe"), []byte("MZ"))

	tests := []struct {
		name string
		path string
		size int
	}{
		{"missing file", filepath.Join(tmp, "missing.exe"), 32},
		{"directory", tmp, 32},
		{"zero size", file, 0},
		{"negative size", file, -4},
		{"oversized", file, 1 << 30},
		{"just over the ceiling", file, MaxSize + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSystem().Extract(tt.path, tt.size)
			assert.ErrorIs(t, err, ErrIconUnavailable)
		})
	}
}

func TestExtractGlyphFallback(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "doom.exe"), []byte("MZ\x90\x00\x03\x00\x00\x00\x04\x00"))

	pb, err := NewSystem().Extract(path, 48)
	require.NoError(t, err)
	require.Equal(t, 48, pb.Size)

	img := pb.Image()
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A, "corner outside the tile is transparent")
	assert.Equal(t, uint8(0xff), img.RGBAAt(4, 24).A, "tile edge is opaque")

	again, err := NewSystem().Extract(path, 48)
	require.NoError(t, err)
	assert.Equal(t, pb.Pix, again.Pix, "glyphs are deterministic")
}

func TestExtractEmptyFileGetsGlyph(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "empty"), nil)

	pb, err := NewSystem().Extract(path, 24)
	require.NoError(t, err)
	assert.Equal(t, 24, pb.Size)
}

func TestExtractDesktopAbsoluteIcon(t *testing.T) {
	tmp := t.TempDir()
	iconPath := writeFile(t, filepath.Join(tmp, "art", "game.png"), solidPNG(t, 16, 16, blue))
	desktop := writeFile(t, filepath.Join(tmp, "game.desktop"), []byte(
		"[Desktop Entry]\nType=Application\nName=Game\nExec=/opt/game/run\nIcon="+iconPath+"\n"))

	pb, err := NewSystem().Extract(desktop, 32)
	require.NoError(t, err)
	assertMostly(t, pb, 16, 16, blue)
}

func TestExtractDesktopThemeIcon(t *testing.T) {
	tmp := t.TempDir()
	iconDir := filepath.Join(tmp, "icons")
	writeFile(t, filepath.Join(iconDir, "hicolor", "48x48", "apps", "supertux.png"), solidPNG(t, 48, 48, red))
	desktop := writeFile(t, filepath.Join(tmp, "supertux.desktop"), []byte(
		"[Desktop Action Play]\nIcon=wrong\n[Desktop Entry]\nName=SuperTux\nIcon=supertux\n"))

	s := &System{IconDirs: []string{iconDir}}
	pb, err := s.Extract(desktop, 48)
	require.NoError(t, err)
	assertMostly(t, pb, 24, 24, red)
}

func TestExtractURLIconFile(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "favicon.png"), solidPNG(t, 16, 16, red))
	url := writeFile(t, filepath.Join(tmp, "Store.url"), []byte(
		"[InternetShortcut]\r\nURL=https://store.example.com/\r\nIconFile=favicon.png\r\nIconIndex=0\r\n"))

	pb, err := NewSystem().Extract(url, 16)
	require.NoError(t, err)
	assertMostly(t, pb, 8, 8, red)
}

func TestExtractURLRemoteIconFallsBack(t *testing.T) {
	url := writeFile(t, filepath.Join(t.TempDir(), "Site.url"), []byte(
		"[InternetShortcut]\nURL=https://example.com/\nIconFile=https://example.com/favicon.ico\n"))

	pb, err := NewSystem().Extract(url, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, pb.Size)
}

// icoDirEntry is one ICONDIRENTRY of a Windows .ico file.
type icoDirEntry struct {
	Width, Height byte
	Colors        byte
	Reserved      byte
	Planes        uint16
	BitCount      uint16
	Size          uint32
	Offset        uint32
}

func writeICO(t *testing.T, frames []icoDirEntry, payloads [][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, struct{ Reserved, Type, Count uint16 }{0, 1, uint16(len(frames))}))
	offset := uint32(6 + 16*len(frames))
	for i, e := range frames {
		e.Size = uint32(len(payloads[i]))
		e.Offset = offset
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, e))
		offset += e.Size
	}
	for _, p := range payloads {
		buf.Write(p)
	}
	return buf.Bytes()
}

// dibFrame encodes a bottom-up 24-bit DIB with an all-opaque AND mask, the
// layout of pre-Vista icons.
func dibFrame(t *testing.T, size int, c color.RGBA) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, struct {
		Size                   uint32
		Width, Height          int32
		Planes, BitCount       uint16
		Compression, SizeImage uint32
		XPels, YPels           int32
		ClrUsed, ClrImportant  uint32
	}{Size: 40, Width: int32(size), Height: int32(2 * size), Planes: 1, BitCount: 24}))
	rowLen := (size*3 + 3) &^ 3
	row := make([]byte, rowLen)
	for x := 0; x < size; x++ {
		row[3*x], row[3*x+1], row[3*x+2] = c.B, c.G, c.R
	}
	for y := 0; y < size; y++ {
		buf.Write(row)
	}
	buf.Write(make([]byte, size*((size+31)/32*4)))
	return buf.Bytes()
}

func TestExtractICOWithPNGEntries(t *testing.T) {
	data := writeICO(t,
		[]icoDirEntry{
			{Width: 16, Height: 16, Planes: 1, BitCount: 32},
			{Width: 32, Height: 32, Planes: 1, BitCount: 32},
		},
		[][]byte{solidPNG(t, 16, 16, red), solidPNG(t, 32, 32, blue)})
	path := writeFile(t, filepath.Join(t.TempDir(), "game.ico"), data)

	pb, err := NewSystem().Extract(path, 32)
	require.NoError(t, err)
	assertMostly(t, pb, 16, 16, blue)
}

func TestExtractICOWithDIBEntry(t *testing.T) {
	data := writeICO(t,
		[]icoDirEntry{{Width: 16, Height: 16, Planes: 1, BitCount: 24}},
		[][]byte{dibFrame(t, 16, red)})
	path := writeFile(t, filepath.Join(t.TempDir(), "legacy.ico"), data)

	pb, err := NewSystem().Extract(path, 16)
	require.NoError(t, err)
	assertMostly(t, pb, 8, 8, red)
	assertMostly(t, pb, 0, 15, red)
}

// minimalPE returns a PE32 image with a single .text section and no
// resources.
func minimalPE(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	dos := make([]byte, 0x40)
	copy(dos, "MZ")
	binary.LittleEndian.PutUint32(dos[0x3c:], 0x40)
	buf.Write(dos)
	buf.WriteString("PE\x00\x00")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, pe.FileHeader{
		Machine:              pe.IMAGE_FILE_MACHINE_I386,
		NumberOfSections:     1,
		SizeOfOptionalHeader: uint16(binary.Size(pe.OptionalHeader32{})),
		Characteristics:      pe.IMAGE_FILE_EXECUTABLE_IMAGE | pe.IMAGE_FILE_32BIT_MACHINE,
	}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, pe.OptionalHeader32{
		Magic:                 0x10b,
		AddressOfEntryPoint:   0x1000,
		BaseOfCode:            0x1000,
		ImageBase:             0x400000,
		SectionAlignment:      0x1000,
		FileAlignment:         0x200,
		MajorSubsystemVersion: 4,
		SizeOfImage:           0x2000,
		SizeOfHeaders:         0x200,
		Subsystem:             pe.IMAGE_SUBSYSTEM_WINDOWS_GUI,
		NumberOfRvaAndSizes:   16,
	}))
	var name [8]uint8
	copy(name[:], ".text")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, pe.SectionHeader32{
		Name:             name,
		VirtualSize:      0x200,
		VirtualAddress:   0x1000,
		SizeOfRawData:    0x200,
		PointerToRawData: 0x200,
		Characteristics:  pe.IMAGE_SCN_CNT_CODE | pe.IMAGE_SCN_MEM_EXECUTE | pe.IMAGE_SCN_MEM_READ,
	}))
	buf.Write(make([]byte, 0x200-buf.Len()))
	buf.Write(make([]byte, 0x200))
	return buf.Bytes()
}

func TestExtractEmbeddedPEIcon(t *testing.T) {
	art := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			art.SetRGBA(x, y, blue)
		}
	}
	appIcon, err := winres.NewIconFromImages([]image.Image{art})
	require.NoError(t, err)
	rs := &winres.ResourceSet{}
	require.NoError(t, rs.SetIcon(winres.ID(1), appIcon))

	var exe bytes.Buffer
	require.NoError(t, rs.WriteToEXE(&exe, bytes.NewReader(minimalPE(t))))
	path := writeFile(t, filepath.Join(t.TempDir(), "game.exe"), exe.Bytes())

	pb, err := NewSystem().Extract(path, 32)
	require.NoError(t, err)
	assertMostly(t, pb, 16, 16, blue)
}

func TestExtractPEWithoutResourcesGetsGlyph(t *testing.T) {
	data := minimalPE(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "tool.dll"), data)

	pb, err := NewSystem().Extract(path, 32)
	require.NoError(t, err)
	assert.Equal(t, glyph(path, data[:sniffLen], 32).Pix, pb.Pix)
}

func TestInitial(t *testing.T) {
	assert.Equal(t, 'D', initial("doom.exe"))
	assert.Equal(t, '7', initial("7days.exe"))
	assert.Equal(t, 'H', initial("  half-life.lnk"))
	assert.Equal(t, '#', initial("ñandú"))
	assert.Equal(t, '#', initial("___"))
}

func TestReadINIKey(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "x.desktop"), []byte(
		"\ufeff# comment\n[Desktop Entry]\n name = Game \nicon=game-icon\n[Other]\nIcon=nope\n"))

	v, err := readINIKey(path, "desktop entry", "Icon")
	require.NoError(t, err)
	assert.Equal(t, "game-icon", v)

	v, err = readINIKey(path, "Missing", "Icon")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestReadINIKeyKeepsHashInValue(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "Store.url"), []byte(
		"[InternetShortcut]\r\nURL=https://store.example.com/#featured\r\nIconFile=icons/#1.png\r\n"))

	v, err := readINIKey(path, "InternetShortcut", "IconFile")
	require.NoError(t, err)
	assert.Equal(t, "icons/#1.png", v)
}
