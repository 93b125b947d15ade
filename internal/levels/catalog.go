package levels

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/vovakirdan/logic-arcade/internal/registry"
)

// CampaignSize is the number of levels in the built-in campaign.
const CampaignSize = 31

const (
	CampaignPack   = "campaign"
	ComponentsPack = "components"
)

//go:embed packs/*.yaml
var packFS embed.FS

var builtin = map[string]*Pack{}

func init() {
	files, err := fs.Glob(packFS, "packs/*.yaml")
	if err != nil {
		panic(fmt.Sprintf("levels: cannot list built-in packs: %v", err))
	}
	for _, name := range files {
		data, err := packFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("levels: cannot read %s: %v", name, err))
		}
		p, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("levels: built-in pack %s: %v", name, err))
		}
		builtin[p.Name()] = p
		registry.Register(p)
	}
}

// Builtin returns a built-in pack by name.
func Builtin(name string) (*Pack, bool) {
	p, ok := builtin[name]
	return p, ok
}

// Campaign returns the built-in campaign.
func Campaign() *Pack {
	return builtin[CampaignPack]
}

// Lookup returns campaign level id. Ids outside 1..CampaignSize are not
// levels; front ends show a placeholder for them.
func Lookup(id int) (Definition, bool) {
	if id < 1 || id > CampaignSize {
		return Definition{}, false
	}
	return Campaign().Definition(id)
}
