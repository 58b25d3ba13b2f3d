package icon

import (
	"image"
	"os"

	ico "github.com/sergeymakinen/go-ico"
)

// decodeICO decodes the largest frame of a Windows .ico file. Both PNG and
// legacy DIB frames are understood.
func decodeICO(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ico.Decode(f)
}
