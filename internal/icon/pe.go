package icon

import (
	"bytes"
	"errors"
	"image"
	"os"

	ico "github.com/sergeymakinen/go-ico"
	"github.com/tc-hib/winres"
)

// peExts are Windows images whose resource section may carry an icon.
var peExts = map[string]bool{
	".exe": true,
	".dll": true,
}

var errNoEmbeddedIcon = errors.New("no icon group in resources")

// peIcon returns the application icon of a PE image: the first RT_GROUP_ICON
// in resource order, which is the one Explorer shows.
func peIcon(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rs, err := winres.LoadFromEXE(f)
	if err != nil {
		return nil, err
	}

	var group winres.Identifier
	rs.WalkType(winres.RT_GROUP_ICON, func(resID winres.Identifier, _ uint16, _ []byte) bool {
		group = resID
		return false
	})
	if group == nil {
		return nil, errNoEmbeddedIcon
	}

	icon, err := rs.GetIcon(group)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := icon.SaveICO(&buf); err != nil {
		return nil, err
	}
	return ico.Decode(&buf)
}
