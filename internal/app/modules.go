package app

import (
	"github.com/vk/framegraphgo/internal/registry"
	"github.com/vk/framegraphgo/modules/buffer"
	"github.com/vk/framegraphgo/modules/texture"
)

// coreModules are the resource kinds every application instance gets unless
// the caller passes its own module list to NewApp.
var coreModules = []registry.Module{
	&texture.Module{},
	&buffer.Module{},
}
