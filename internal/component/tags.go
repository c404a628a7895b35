package component

import "gift-tornado/internal/ecs"

const (
	CTagPlayer ecs.ComponentType = 7
	CTagElf    ecs.ComponentType = 8
)

// TagPlayer marks the pointer-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagElf marks the NPC that chases gifts.
type TagElf struct{}

func (TagElf) Type() ecs.ComponentType { return CTagElf }
