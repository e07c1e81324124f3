package app

import (
	"github.com/vk/helix/internal/feature"
	"github.com/vk/helix/internal/registry"
	"github.com/vk/helix/modules/audio"
	"github.com/vk/helix/modules/network"
	"github.com/vk/helix/modules/speech"
)

// coreModules is the definitive list of subsystem providers compiled into
// the helix binary.
var coreModules = []registry.Module{
	&audio.Module{},
	&speech.Module{},
	&network.Module{},
}

// builtinDefinitions are the feature nodes used when no manifest is given:
// the same fixed set the embedded facade registers.
func builtinDefinitions() []feature.Definition {
	return []feature.Definition{
		audio.Definition(),
		speech.Definition(),
		network.Definition(),
	}
}
