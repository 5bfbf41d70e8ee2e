//spellchecker:words imap
package imap

import "github.com/FAU-CDI/iomemory/internal/triplestore/impl"

// MemoryMap holds forward and backward maps in memory.
// It implements Map.
type MemoryMap struct {
	FStorage Memory[impl.Term, impl.ID]
	RStorage Memory[impl.ID, impl.Term]
}

var (
	_ Map = (*MemoryMap)(nil)
)

func (me *MemoryMap) Forward() (HashMap[impl.Term, impl.ID], error) {
	if me.FStorage.IsNil() {
		me.FStorage = MakeMemory[impl.Term, impl.ID](0)
	}
	return &me.FStorage, nil
}

func (me *MemoryMap) Reverse() (HashMap[impl.ID, impl.Term], error) {
	if me.RStorage.IsNil() {
		me.RStorage = MakeMemory[impl.ID, impl.Term](0)
	}
	return &me.RStorage, nil
}
