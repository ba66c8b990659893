package lcd

import (
	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/model"
)

func makeDescriptor(values ...float32) *descriptor.Descriptor {
	return descriptor.MustNew(values)
}

func fillDescriptor(root model.NodeID, nodes []model.NodeID, values ...float32) *descriptor.Descriptor {
	return descriptor.MustNew(values, descriptor.WithRoot(root), descriptor.WithNodes(nodes...))
}
