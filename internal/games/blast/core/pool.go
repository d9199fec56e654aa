package core

// Pool hands out reusable Block values and takes them back on removal.
// Acquire returns ErrPoolExhausted when it has nothing to give; the engine
// then allocates the block itself.
type Pool interface {
	Acquire(kind Kind) (*Block, error)
	Release(b *Block)
}

// BlockPool is a bounded free list of blocks per kind.
type BlockPool struct {
	free     map[Kind][]*Block
	capacity int
}

// NewBlockPool creates a pool holding up to capacity free blocks per kind,
// pre-filled with capacity cubes.
func NewBlockPool(capacity int) *BlockPool {
	if capacity < 0 {
		capacity = 0
	}
	p := &BlockPool{
		free:     make(map[Kind][]*Block),
		capacity: capacity,
	}
	cubes := make([]*Block, capacity)
	for i := range cubes {
		cubes[i] = &Block{Kind: KindCube}
	}
	p.free[KindCube] = cubes
	return p
}

// Acquire pops a free block of the given kind.
func (p *BlockPool) Acquire(kind Kind) (*Block, error) {
	list := p.free[kind]
	if len(list) == 0 {
		return nil, ErrPoolExhausted
	}
	b := list[len(list)-1]
	p.free[kind] = list[:len(list)-1]
	b.reset()
	b.Kind = kind
	return b, nil
}

// Release returns b to the free list, dropping it when the list is full.
func (p *BlockPool) Release(b *Block) {
	if b == nil {
		return
	}
	list := p.free[b.Kind]
	if len(list) >= p.capacity {
		return
	}
	p.free[b.Kind] = append(list, b)
}

// Free returns the number of free blocks of the given kind.
func (p *BlockPool) Free(kind Kind) int {
	return len(p.free[kind])
}
